package fees

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cdp-clube/cdp-api/internal/sport"
	"github.com/cdp-clube/cdp-api/internal/user"
)

// ErrMissingFeeRow signals a sport enrollment with no configured fee row.
// This is a configuration problem and must never resolve to a zero amount.
var ErrMissingFeeRow = errors.New("no fee row configured for enrolled sport")

// Member is the billing-relevant slice of a user, resolved for one period.
type Member struct {
	UserID      uint
	Escalao     int  // user.EscalaoNone falls back to tier 2
	IsMinor     bool // age taken at the period start
	MemberSince *time.Time
}

// EnrollmentLine is one sport enrollment feeding the computation, ordered by
// enrollment date (oldest first) by the caller.
type EnrollmentLine struct {
	SportID   uint
	SportName string
	JoinedAt  time.Time
}

// QuoteLine is the per-sport part of a quote.
type QuoteLine struct {
	SportID       uint            `json:"sport_id"`
	SportName     string          `json:"sport_name"`
	Amount        decimal.Decimal `json:"amount"`
	SiblingRate   bool            `json:"sibling_rate"`
	QuotaIncluded bool            `json:"quota_included"`
}

// Quote is the full amount due for one member for one billing period, with
// the breakdown the member sees.
type Quote struct {
	Lines           []QuoteLine     `json:"lines"`
	GlobalFee       decimal.Decimal `json:"global_fee"`
	GlobalFeeWaived bool            `json:"global_fee_waived"`
	Total           decimal.Decimal `json:"total"`
}

// Calculator computes amounts due against one FeeTable snapshot.
type Calculator struct {
	table *FeeTable
}

// NewCalculator wraps a fee table snapshot.
func NewCalculator(table *FeeTable) *Calculator {
	return &Calculator{table: table}
}

// ComputeDue computes the amount one member owes for a single billing
// period. Rule order:
//
//  1. Each enrollment is billed from its sport's fee row at the member's
//     escalão tier (unset escalão bills at tier 2).
//  2. The sibling column applies to the second and later enrollments of the
//     same member (2ª modalidade), and to every enrollment when a declared
//     family member already pays (hasPayingFamilyMember).
//  3. If any enrolled sport has QuotaIncluded, the global sócio fee is
//     waived for the whole membership; otherwise it is added exactly once.
//  4. With no enrollments the member owes the global fee alone (pure sócio).
//
// Intermediate amounts stay unrounded; the total rounds half-up to 2
// decimals at the end.
func (c *Calculator) ComputeDue(m Member, enrollments []EnrollmentLine, hasPayingFamilyMember bool) (*Quote, error) {
	quote := &Quote{}

	total := decimal.Zero
	quotaIncluded := false

	for i, e := range enrollments {
		row := c.table.SportRow(e.SportID)
		if row == nil {
			return nil, fmt.Errorf("%w: sport %d (%s)", ErrMissingFeeRow, e.SportID, e.SportName)
		}

		sibling := i > 0 || hasPayingFamilyMember
		amount := sportFee(row, m.Escalao, sibling)

		quote.Lines = append(quote.Lines, QuoteLine{
			SportID:       e.SportID,
			SportName:     e.SportName,
			Amount:        amount.Round(2),
			SiblingRate:   sibling,
			QuotaIncluded: row.QuotaIncluded,
		})
		total = total.Add(amount)
		if row.QuotaIncluded {
			quotaIncluded = true
		}
	}

	global := c.table.Global.ForMinor(m.IsMinor)
	switch {
	case len(enrollments) == 0:
		// Pure sócio: quota only.
		quote.GlobalFee = global.Round(2)
		total = total.Add(global)
	case quotaIncluded:
		quote.GlobalFeeWaived = true
	default:
		quote.GlobalFee = global.Round(2)
		total = total.Add(global)
	}

	quote.Total = total.Round(2)
	return quote, nil
}

// SportDue computes the standalone fee for one enrollment, applying the
// sibling column when asked. Used by per-sport breakdowns.
func (c *Calculator) SportDue(sportID uint, escalao int, sibling bool) (decimal.Decimal, error) {
	row := c.table.SportRow(sportID)
	if row == nil {
		return decimal.Zero, fmt.Errorf("%w: sport %d", ErrMissingFeeRow, sportID)
	}
	return sportFee(row, escalao, sibling).Round(2), nil
}

// InscriptionDue returns the one-off inscription fee, discounted for sibling
// or second-modality cases.
func (c *Calculator) InscriptionDue(sportID uint, discount bool) (decimal.Decimal, error) {
	row := c.table.SportRow(sportID)
	if row == nil {
		return decimal.Zero, fmt.Errorf("%w: sport %d", ErrMissingFeeRow, sportID)
	}
	if discount {
		return row.InscriptionFeeDiscount.Round(2), nil
	}
	return row.InscriptionFeeNormal.Round(2), nil
}

func sportFee(row *sport.Sport, escalao int, sibling bool) decimal.Decimal {
	switch escalao {
	case user.Escalao1:
		if sibling {
			return row.FeeEscalao1Sibling
		}
		return row.FeeEscalao1Normal
	default:
		// Tier 2 is the standard rate; an unset escalão bills here too.
		if sibling {
			return row.FeeEscalao2Sibling
		}
		if row.FeeEscalao2Normal.IsZero() && row.MonthlyFee.IsPositive() {
			// Legacy rows configured before the escalão split.
			return row.MonthlyFee
		}
		return row.FeeEscalao2Normal
	}
}
