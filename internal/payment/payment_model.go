// payment/model.go
package payment

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment statuses. A row is never deleted, only transitioned.
const (
	StatusUnpaid    = "Unpaid"
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// Payment methods recorded on manual settlements.
const (
	MethodMultibanco = "Multibanco"
	MethodCash       = "Numerário"
	MethodTransfer   = "Transferência"
)

// Payment is one billing period of one member. PeriodMonth is 1-12 for
// monthly quotas and 0 for an annual quota (anuidade). The (user, period)
// unique index is the concurrency backstop for reference allocation.
type Payment struct {
	gorm.Model
	UserID         uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_user_period"`
	PeriodMonth    int             `json:"period_month" gorm:"not null;default:0;uniqueIndex:idx_user_period"`
	PeriodYear     int             `json:"period_year" gorm:"not null;uniqueIndex:idx_user_period"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:numeric(10,2)"`
	Status         string          `json:"status" gorm:"default:'Unpaid';not null"`
	PaymentMethod  string          `json:"payment_method"`
	Entity         string          `json:"entity"`
	Reference      string          `json:"reference"`
	TransactionKey string          `json:"transaction_key"`
	Description    string          `json:"description"`
	PaymentDate    *time.Time      `json:"payment_date"`
}

// Period returns the billing period this payment settles.
func (p *Payment) Period() Period {
	return Period{Month: p.PeriodMonth, Year: p.PeriodYear}
}
