package fees

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cdp-clube/cdp-api/internal/sport"
)

type FeeRepository interface {
	// LoadFeeTable reads the global fees and every sport fee row in one go.
	LoadFeeTable() (*FeeTable, error)

	GetSetting(key string) (*SystemSetting, error)
	UpsertSetting(setting *SystemSetting) error
}

type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository creates a new instance of FeeRepository.
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) LoadFeeTable() (*FeeTable, error) {
	table := &FeeTable{Sports: make(map[uint]sport.Sport)}

	var settings []SystemSetting
	if err := r.db.Where("key IN ?", []string{MemberFeeKey, MinorMemberFeeKey}).Find(&settings).Error; err != nil {
		return nil, err
	}
	for _, s := range settings {
		amount, err := decimal.NewFromString(s.Value)
		if err != nil {
			return nil, fmt.Errorf("setting %s holds non-numeric value %q", s.Key, s.Value)
		}
		switch s.Key {
		case MemberFeeKey:
			table.Global.Adult = amount
		case MinorMemberFeeKey:
			table.Global.Minor = amount
		}
	}

	var sports []sport.Sport
	if err := r.db.Find(&sports).Error; err != nil {
		return nil, err
	}
	for _, s := range sports {
		table.Sports[s.ID] = s
	}

	return table, nil
}

func (r *feeRepository) GetSetting(key string) (*SystemSetting, error) {
	var setting SystemSetting
	err := r.db.First(&setting, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *feeRepository) UpsertSetting(setting *SystemSetting) error {
	return r.db.Save(setting).Error
}
