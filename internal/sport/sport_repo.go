package sport

import (
	"errors"

	"gorm.io/gorm"
)

type SportRepository interface {
	GetSportByID(id uint) (*Sport, error)
	GetAllSports() ([]Sport, error)
	UpdateSport(sport *Sport) error
}

type sportRepository struct {
	db *gorm.DB
}

// NewSportRepository creates a new instance of SportRepository.
func NewSportRepository(db *gorm.DB) SportRepository {
	return &sportRepository{db: db}
}

func (r *sportRepository) GetSportByID(id uint) (*Sport, error) {
	var sport Sport
	err := r.db.First(&sport, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sport, nil
}

func (r *sportRepository) GetAllSports() ([]Sport, error) {
	var sports []Sport
	err := r.db.Order("name ASC").Find(&sports).Error
	return sports, err
}

func (r *sportRepository) UpdateSport(sport *Sport) error {
	return r.db.Save(sport).Error
}
