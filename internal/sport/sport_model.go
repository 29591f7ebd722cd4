// sport/model.go
package sport

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sport represents a modalidade offered by the club, together with its fee
// row. Amounts are monthly unless stated otherwise.
type Sport struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
	ImageUrl    string `json:"image_url"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`

	// Legacy flat fee, kept as a fallback when the escalão rows are unset.
	MonthlyFee decimal.Decimal `json:"monthly_fee" gorm:"type:numeric(10,2);default:0"`

	// Per-escalão monthly fees. The sibling column also covers a second
	// modality by the same member.
	FeeEscalao1Normal  decimal.Decimal `json:"fee_escalao1_normal" gorm:"type:numeric(10,2);default:0"`
	FeeEscalao1Sibling decimal.Decimal `json:"fee_escalao1_sibling" gorm:"type:numeric(10,2);default:0"`
	FeeEscalao2Normal  decimal.Decimal `json:"fee_escalao2_normal" gorm:"type:numeric(10,2);default:0"`
	FeeEscalao2Sibling decimal.Decimal `json:"fee_escalao2_sibling" gorm:"type:numeric(10,2);default:0"`

	// One-off inscription fees.
	InscriptionFeeNormal   decimal.Decimal `json:"inscription_fee_normal" gorm:"type:numeric(10,2);default:0"`
	InscriptionFeeDiscount decimal.Decimal `json:"inscription_fee_discount" gorm:"type:numeric(10,2);default:0"`

	// QuotaIncluded means the sport fee already subsumes the global sócio
	// quota; when false the global fee is charged on top.
	QuotaIncluded bool `json:"quota_included" gorm:"default:true"`
}
