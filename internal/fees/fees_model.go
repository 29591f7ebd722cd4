// fees/model.go
package fees

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cdp-clube/cdp-api/internal/sport"
)

// SystemSetting is a key/value row. The global sócio fees live here under
// the MemberFeeKey and MinorMemberFeeKey keys.
type SystemSetting struct {
	Key         string    `gorm:"primaryKey;size:100" json:"key"`
	Value       string    `gorm:"not null" json:"value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	MemberFeeKey      = "MemberFee"
	MinorMemberFeeKey = "MinorMemberFee"
)

// GlobalFee holds the sócio quota per age bracket.
type GlobalFee struct {
	Adult decimal.Decimal `json:"adult"`
	Minor decimal.Decimal `json:"minor"`
}

// ForMinor selects the bracket amount.
func (g GlobalFee) ForMinor(minor bool) decimal.Decimal {
	if minor {
		return g.Minor
	}
	return g.Adult
}

// FeeTable is one consistent snapshot of every fee the club charges: the
// global sócio quota plus the per-sport rows. A snapshot is read once per
// request so an admin edit never lands mid-computation.
type FeeTable struct {
	Global GlobalFee
	Sports map[uint]sport.Sport
}

// SportRow returns the fee row for a sport, or nil when the sport is not in
// the table.
func (t *FeeTable) SportRow(sportID uint) *sport.Sport {
	if s, ok := t.Sports[sportID]; ok {
		return &s
	}
	return nil
}

// TableName keeps the settings table name aligned with the admin tooling.
func (SystemSetting) TableName() string { return "system_settings" }
