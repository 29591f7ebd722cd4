package payment

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cdp-clube/cdp-api/internal/fees"
	"github.com/cdp-clube/cdp-api/internal/team"
	"github.com/cdp-clube/cdp-api/internal/user"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPeriodCompleted = errors.New("period already has a completed payment")
	ErrBadPeriod       = errors.New("period does not match the member's billing preference")
	ErrBadStatus       = errors.New("unknown payment status")
)

// QuotaStatus is the member-facing answer to "what do I owe right now".
// NextPeriod is always set: the period after the one due, or the first
// future period when the member is paid up, open for advance payment.
type QuotaStatus struct {
	UserID          uint        `json:"user_id"`
	Preference      string      `json:"payment_preference"`
	Status          string      `json:"status"`
	UpToDate        bool        `json:"up_to_date"`
	Period          *Period     `json:"period,omitempty"`
	PeriodLabel     string      `json:"period_label,omitempty"`
	NextPeriod      Period      `json:"next_period"`
	NextPeriodLabel string      `json:"next_period_label"`
	Quote           *fees.Quote `json:"quote,omitempty"`
	Existing        *Payment    `json:"existing_payment,omitempty"`
}

// Tracker drives payment rows through their lifecycle: it resolves the next
// due period, quotes it, allocates payment references and applies admin
// status overrides.
type Tracker struct {
	payments PaymentRepository
	users    user.UserRepository
	teams    team.TeamRepository
	fees     fees.FeeRepository

	entity string // Multibanco-style entity stamped on every reference
	now    func() time.Time
}

// NewTracker wires a Tracker over the payment, user, team and fee stores.
func NewTracker(payments PaymentRepository, users user.UserRepository, teams team.TeamRepository, feeRepo fees.FeeRepository, entity string) *Tracker {
	return &Tracker{
		payments: payments,
		users:    users,
		teams:    teams,
		fees:     feeRepo,
		entity:   entity,
		now:      time.Now,
	}
}

// GetQuotaStatus resolves the member's next unpaid period and quotes it
// against a single fee-table snapshot. UpToDate is true when every period
// from the join date through the current one is Completed.
func (t *Tracker) GetQuotaStatus(userID uint) (*QuotaStatus, error) {
	u, profile, err := t.loadMember(userID)
	if err != nil {
		return nil, err
	}

	completed, err := t.payments.GetCompletedPeriods(userID)
	if err != nil {
		return nil, err
	}

	status := &QuotaStatus{
		UserID:     userID,
		Preference: profile.PaymentPreference,
	}

	due, next := ResolveCurrentAndNext(profile.PaymentPreference, profile.MemberSince, completed, t.now())
	status.NextPeriod = next
	status.NextPeriodLabel = next.Label()
	if due == nil {
		status.UpToDate = true
		status.Status = StatusCompleted
		return status, nil
	}
	status.Status = StatusUnpaid

	quote, err := t.quoteFor(u, profile, *due)
	if err != nil {
		return nil, err
	}
	status.Period = due
	status.PeriodLabel = due.Label()
	status.Quote = quote

	existing, err := t.payments.GetPayment(userID, due.Month, due.Year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// An Unpaid row left by an admin revert still carries a payable
		// reference; the member sees it either way.
		status.Existing = existing
		if existing.Status == StatusPending {
			status.Status = StatusPending
		}
	}
	return status, nil
}

// PeriodStatus reports one member's state for an explicit period: the stored
// payment row (nil when the period was never referenced, meaning Unpaid) and
// the quoted amount. Annual members are resolved against their year period
// regardless of the month asked for.
func (t *Tracker) PeriodStatus(userID uint, month, year int) (*Payment, *fees.Quote, error) {
	u, profile, err := t.loadMember(userID)
	if err != nil {
		return nil, nil, err
	}
	if profile.PaymentPreference == user.PreferenceAnnual {
		month = 0
	}
	period, err := checkPeriod(profile.PaymentPreference, month, year)
	if err != nil {
		return nil, nil, err
	}

	p, err := t.payments.GetPayment(userID, month, year)
	if err != nil {
		return nil, nil, err
	}
	quote, err := t.quoteFor(u, profile, period)
	if err != nil {
		return nil, nil, err
	}
	return p, quote, nil
}

// GenerateReference allocates a payment reference for one (user, period).
// It is idempotent for a Pending period, upgrades an Unpaid row in place and
// rejects a Completed one. The period may run at most one ahead of the
// earliest unpaid period, so a member can pay in advance but not skip ahead.
// The (user, period) unique index backstops concurrent allocation; on a
// duplicate-key conflict the row is reloaded and handled once more.
func (t *Tracker) GenerateReference(userID uint, month, year int) (*Payment, error) {
	u, profile, err := t.loadMember(userID)
	if err != nil {
		return nil, err
	}
	period, err := checkPeriod(profile.PaymentPreference, month, year)
	if err != nil {
		return nil, err
	}

	completed, err := t.payments.GetCompletedPeriods(userID)
	if err != nil {
		return nil, err
	}
	_, next := ResolveCurrentAndNext(profile.PaymentPreference, profile.MemberSince, completed, t.now())
	if period.After(next) {
		return nil, fmt.Errorf("%w: %s is beyond the next payable period %s", ErrBadPeriod, period.Label(), next.Label())
	}

	existing, err := t.payments.GetPayment(userID, month, year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return t.referenceForExisting(existing)
	}

	quote, err := t.quoteFor(u, profile, period)
	if err != nil {
		return nil, err
	}

	p := &Payment{
		UserID:      userID,
		PeriodMonth: month,
		PeriodYear:  year,
		Amount:      quote.Total,
		Status:      StatusPending,
		Description: period.Label(),
	}
	t.stampReference(p)

	err = t.payments.CreatePayment(p)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race: another request created the row first.
		existing, err = t.payments.GetPayment(userID, month, year)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("payment for user %d period %s vanished after conflict", userID, period.Label())
		}
		return t.referenceForExisting(existing)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (t *Tracker) referenceForExisting(p *Payment) (*Payment, error) {
	switch p.Status {
	case StatusCompleted:
		return nil, fmt.Errorf("%w: %s", ErrPeriodCompleted, p.Period().Label())
	case StatusPending:
		// Same reference until it is settled or voided.
		return p, nil
	default:
		t.stampReference(p)
		p.Status = StatusPending
		if err := t.payments.UpdatePayment(p); err != nil {
			return nil, err
		}
		return p, nil
	}
}

// AdminSetStatus applies an admin override to one (user, period), creating
// the row when the admin validates a period that was never referenced.
// Overrides only settle (Completed) or revert (Unpaid); Pending is reserved
// for reference allocation, which stamps the entity/reference pair a
// Pending row must carry.
func (t *Tracker) AdminSetStatus(actorID, userID uint, month, year int, status, method, description string, amount *decimal.Decimal) (*Payment, error) {
	if status != StatusUnpaid && status != StatusCompleted {
		return nil, fmt.Errorf("%w: admin overrides accept %s or %s, got %q", ErrBadStatus, StatusCompleted, StatusUnpaid, status)
	}

	u, profile, err := t.loadMember(userID)
	if err != nil {
		return nil, err
	}
	period, err := checkPeriod(profile.PaymentPreference, month, year)
	if err != nil {
		return nil, err
	}

	p, err := t.payments.GetPayment(userID, month, year)
	if err != nil {
		return nil, err
	}

	created := false
	if p == nil {
		quote, err := t.quoteFor(u, profile, period)
		if err != nil {
			return nil, err
		}
		p = &Payment{
			UserID:      userID,
			PeriodMonth: month,
			PeriodYear:  year,
			Amount:      quote.Total,
			Status:      StatusUnpaid,
			Description: period.Label(),
		}
		created = true
	}

	p.Status = status
	if method != "" {
		p.PaymentMethod = method
	}
	if description != "" {
		p.Description = description
	}
	if amount != nil {
		p.Amount = amount.Round(2)
	}
	switch status {
	case StatusCompleted:
		if p.PaymentDate == nil {
			now := t.now()
			p.PaymentDate = &now
		}
	case StatusUnpaid:
		// Reverting wipes the settlement record; the reference stays so the
		// member can pay the same one again.
		p.PaymentDate = nil
	}

	if created {
		err = t.payments.CreatePayment(p)
	} else {
		err = t.payments.UpdatePayment(p)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("payment override: admin %d set user %d period %s to %s (%s)",
		actorID, userID, period.Label(), status, t.now().Format(time.RFC3339))
	return p, nil
}

// loadMember resolves the user plus their member profile; users without a
// profile get an implicit monthly one so billing never dead-ends.
func (t *Tracker) loadMember(userID uint) (*user.User, *user.MemberProfile, error) {
	u, err := t.users.GetUserByID(userID)
	if err != nil {
		return nil, nil, err
	}
	if u == nil {
		return nil, nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}
	profile := u.MemberProfile
	if profile == nil {
		profile = &user.MemberProfile{UserID: userID, PaymentPreference: user.PreferenceMonthly}
	}
	if profile.PaymentPreference == "" {
		profile.PaymentPreference = user.PreferenceMonthly
	}
	return u, profile, nil
}

// quoteFor computes the amount due for one period from a single FeeTable
// snapshot. Age is taken at the period start.
func (t *Tracker) quoteFor(u *user.User, profile *user.MemberProfile, period Period) (*fees.Quote, error) {
	table, err := t.fees.LoadFeeTable()
	if err != nil {
		return nil, err
	}

	enrollments, err := t.teams.GetActiveEnrollmentsByUserID(u.ID)
	if err != nil {
		return nil, err
	}

	hasPayingFamily, err := t.hasPayingFamilyMember(u.ID, enrollments)
	if err != nil {
		return nil, err
	}

	lines := make([]fees.EnrollmentLine, 0, len(enrollments))
	for _, e := range enrollments {
		lines = append(lines, fees.EnrollmentLine{
			SportID:   e.SportID,
			SportName: e.SportName,
			JoinedAt:  e.JoinedAt,
		})
	}

	periodStart := period.Start(t.now().Location())
	member := fees.Member{
		UserID:      u.ID,
		Escalao:     profile.Escalao,
		IsMinor:     u.IsMinorAt(periodStart),
		MemberSince: profile.MemberSince,
	}

	quote, err := fees.NewCalculator(table).ComputeDue(member, lines, hasPayingFamily)
	if err != nil {
		return nil, err
	}
	if profile.PaymentPreference == user.PreferenceAnnual {
		// The whole breakdown scales, not just the total, so the lines
		// still sum to what the member is charged.
		twelve := decimal.NewFromInt(12)
		for i := range quote.Lines {
			quote.Lines[i].Amount = quote.Lines[i].Amount.Mul(twelve)
		}
		quote.GlobalFee = quote.GlobalFee.Mul(twelve)
		quote.Total = quote.Total.Mul(twelve).Round(2)
	}
	return quote, nil
}

// hasPayingFamilyMember reports whether any family-linked account holds an
// active enrollment older than this user's oldest one. That linked member is
// the one paying the normal rate, so this user bills at the sibling rate.
func (t *Tracker) hasPayingFamilyMember(userID uint, own []team.Enrollment) (bool, error) {
	linkedIDs, err := t.users.GetFamilyLinkedUserIDs(userID)
	if err != nil {
		return false, err
	}
	if len(linkedIDs) == 0 {
		return false, nil
	}

	linked, err := t.teams.GetActiveEnrollmentsByUserIDs(linkedIDs)
	if err != nil {
		return false, err
	}
	if len(linked) == 0 {
		return false, nil
	}
	if len(own) == 0 {
		return true, nil
	}

	oldest := own[0].JoinedAt
	for _, e := range linked {
		if e.JoinedAt.Before(oldest) {
			return true, nil
		}
	}
	return false, nil
}

// checkPeriod validates a requested (month, year) against the member's
// billing cadence: annual members use month 0, monthly members 1-12.
func checkPeriod(preference string, month, year int) (Period, error) {
	if year < 2000 || year > 2100 {
		return Period{}, fmt.Errorf("%w: year %d out of range", ErrBadPeriod, year)
	}
	annual := preference == user.PreferenceAnnual
	if annual && month != 0 {
		return Period{}, fmt.Errorf("%w: annual members bill per year, got month %d", ErrBadPeriod, month)
	}
	if !annual && (month < 1 || month > 12) {
		return Period{}, fmt.Errorf("%w: month %d", ErrBadPeriod, month)
	}
	return Period{Month: month, Year: year}, nil
}

// stampReference issues a fresh transaction key and derives the Multibanco
// style 9-digit reference from it: seven digits from the key plus two
// ISO 7064 style check digits.
func (t *Tracker) stampReference(p *Payment) {
	key := uuid.New()
	base := binary.BigEndian.Uint32(key[0:4]) % 10000000
	check := 98 - (uint64(base)*100)%97

	p.TransactionKey = key.String()
	p.Entity = t.entity
	p.Reference = fmt.Sprintf("%07d%02d", base, check)
}
