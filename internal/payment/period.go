package payment

import (
	"fmt"
	"time"

	"github.com/cdp-clube/cdp-api/internal/user"
)

// Period identifies one billing period. Month is 1-12 for monthly billing
// and 0 for an annual quota.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

var monthNames = [13]string{
	"", "Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// IsAnnual reports whether the period covers a whole year.
func (p Period) IsAnnual() bool {
	return p.Month == 0
}

// Label renders the period the way members see it.
func (p Period) Label() string {
	if p.IsAnnual() {
		return fmt.Sprintf("Anuidade %d", p.Year)
	}
	return fmt.Sprintf("%s %d", monthNames[p.Month], p.Year)
}

// Start is the first instant of the period, used for age-at-period-start.
func (p Period) Start(loc *time.Location) time.Time {
	month := time.Month(p.Month)
	if p.IsAnnual() {
		month = time.January
	}
	return time.Date(p.Year, month, 1, 0, 0, 0, 0, loc)
}

// Next is the following period. time.Date normalizes month 13 into January
// of the next year, which handles the December rollover.
func (p Period) Next() Period {
	if p.IsAnnual() {
		return Period{Month: 0, Year: p.Year + 1}
	}
	t := time.Date(p.Year, time.Month(p.Month)+1, 1, 0, 0, 0, 0, time.UTC)
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// After reports whether p starts after q. Both periods must share the same
// cadence (annual compared with annual, monthly with monthly).
func (p Period) After(q Period) bool {
	if p.Year != q.Year {
		return p.Year > q.Year
	}
	return p.Month > q.Month
}

// periodOf maps an instant to the billing period containing it.
func periodOf(t time.Time, annual bool) Period {
	if annual {
		return Period{Month: 0, Year: t.Year()}
	}
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// ResolveCurrentAndNext finds the earliest period at or after the membership
// start without a Completed payment, capped at the period containing now. A
// nil current means the member is fully paid up. next is the period after
// current, or the period after now when nothing is due; it is the furthest
// period the member may pay in advance.
//
// The first period is the join month (or year); there is no proration.
// Members without a recorded join date are billed from the current period.
func ResolveCurrentAndNext(preference string, memberSince *time.Time, completed map[Period]bool, now time.Time) (*Period, Period) {
	annual := preference == user.PreferenceAnnual

	current := periodOf(now, annual)
	p := current
	if memberSince != nil {
		p = periodOf(*memberSince, annual)
	}

	for !p.After(current) {
		if !completed[p] {
			due := p
			return &due, due.Next()
		}
		p = p.Next()
	}
	return nil, current.Next()
}
