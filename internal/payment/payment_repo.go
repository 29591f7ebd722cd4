package payment

import (
	"errors"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	CreatePayment(payment *Payment) error
	UpdatePayment(payment *Payment) error

	// GetPayment returns the row for one (user, period) or (nil, nil).
	GetPayment(userID uint, month, year int) (*Payment, error)

	// GetPaymentsByUserID returns the user's full payment history, most
	// recent period first.
	GetPaymentsByUserID(userID uint) ([]Payment, error)

	// GetPaymentsByUserIDs is the batched form used by admin listings.
	GetPaymentsByUserIDs(userIDs []uint) ([]Payment, error)

	// GetCompletedPeriods returns the set of periods the user has settled.
	GetCompletedPeriods(userID uint) (map[Period]bool, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreatePayment(payment *Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) UpdatePayment(payment *Payment) error {
	return r.db.Save(payment).Error
}

func (r *paymentRepository) GetPayment(userID uint, month, year int) (*Payment, error) {
	var payment Payment
	err := r.db.Where("user_id = ? AND period_month = ? AND period_year = ?", userID, month, year).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetPaymentsByUserID(userID uint) ([]Payment, error) {
	var payments []Payment
	err := r.db.Where("user_id = ?", userID).
		Order("period_year DESC, period_month DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) GetPaymentsByUserIDs(userIDs []uint) ([]Payment, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var payments []Payment
	err := r.db.Where("user_id IN ?", userIDs).
		Order("user_id ASC, period_year DESC, period_month DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) GetCompletedPeriods(userID uint) (map[Period]bool, error) {
	var payments []Payment
	err := r.db.Select("period_month", "period_year").
		Where("user_id = ? AND status = ?", userID, StatusCompleted).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	completed := make(map[Period]bool, len(payments))
	for _, p := range payments {
		completed[p.Period()] = true
	}
	return completed, nil
}
