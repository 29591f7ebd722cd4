package fees

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cdp-clube/cdp-api/internal/sport"
	"github.com/cdp-clube/cdp-api/internal/user"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testTable() *FeeTable {
	return &FeeTable{
		Global: GlobalFee{Adult: dec("5.00"), Minor: dec("2.50")},
		Sports: map[uint]sport.Sport{
			1: {
				Model:              gorm.Model{ID: 1},
				Name:               "Basquetebol",
				FeeEscalao1Normal:  dec("25.00"),
				FeeEscalao1Sibling: dec("20.00"),
				FeeEscalao2Normal:  dec("20.00"),
				FeeEscalao2Sibling: dec("16.00"),
				QuotaIncluded:      false,
			},
			2: {
				Model:              gorm.Model{ID: 2},
				Name:               "Natação",
				FeeEscalao2Normal:  dec("15.00"),
				FeeEscalao2Sibling: dec("12.00"),
				QuotaIncluded:      false,
			},
			3: {
				Model:              gorm.Model{ID: 3},
				Name:               "Futsal",
				FeeEscalao2Normal:  dec("22.00"),
				FeeEscalao2Sibling: dec("18.00"),
				QuotaIncluded:      true,
			},
			4: {
				Model:         gorm.Model{ID: 4},
				Name:          "Xadrez",
				MonthlyFee:    dec("10.00"),
				QuotaIncluded: false,
			},
		},
	}
}

func adult(escalao int) Member {
	return Member{UserID: 1, Escalao: escalao, IsMinor: false}
}

func TestComputeDueSingleSport(t *testing.T) {
	calc := NewCalculator(testTable())

	quote, err := calc.ComputeDue(adult(user.Escalao2), []EnrollmentLine{
		{SportID: 1, SportName: "Basquetebol", JoinedAt: time.Now()},
	}, false)
	require.NoError(t, err)

	// 20.00 sport + 5.00 global quota.
	assert.True(t, quote.Total.Equal(dec("25.00")), "got %s", quote.Total)
	assert.False(t, quote.GlobalFeeWaived)
	require.Len(t, quote.Lines, 1)
	assert.True(t, quote.Lines[0].Amount.Equal(dec("20.00")))
	assert.False(t, quote.Lines[0].SiblingRate)
}

func TestComputeDueTwoSportsGlobalChargedOnce(t *testing.T) {
	calc := NewCalculator(testTable())

	quote, err := calc.ComputeDue(adult(user.Escalao2), []EnrollmentLine{
		{SportID: 1, SportName: "Basquetebol"},
		{SportID: 2, SportName: "Natação"},
	}, false)
	require.NoError(t, err)

	// First sport at the normal rate, second modality at the sibling rate,
	// global fee exactly once: 20 + 12 + 5.
	assert.True(t, quote.Total.Equal(dec("37.00")), "got %s", quote.Total)
	require.Len(t, quote.Lines, 2)
	assert.False(t, quote.Lines[0].SiblingRate)
	assert.True(t, quote.Lines[1].SiblingRate)
}

func TestComputeDueQuotaIncludedWaivesGlobal(t *testing.T) {
	calc := NewCalculator(testTable())

	quote, err := calc.ComputeDue(adult(user.Escalao2), []EnrollmentLine{
		{SportID: 3, SportName: "Futsal"},
	}, false)
	require.NoError(t, err)

	assert.True(t, quote.GlobalFeeWaived)
	assert.True(t, quote.Total.Equal(dec("22.00")), "got %s", quote.Total)
}

func TestComputeDueQuotaIncludedWaivesAcrossSports(t *testing.T) {
	calc := NewCalculator(testTable())

	// One quota-included sport waives the global fee for the whole
	// membership, including the quota-excluded enrollment.
	quote, err := calc.ComputeDue(adult(user.Escalao2), []EnrollmentLine{
		{SportID: 3, SportName: "Futsal"},
		{SportID: 2, SportName: "Natação"},
	}, false)
	require.NoError(t, err)

	assert.True(t, quote.GlobalFeeWaived)
	// 22 + 12 (sibling rate on the second modality), no global.
	assert.True(t, quote.Total.Equal(dec("34.00")), "got %s", quote.Total)
}

func TestComputeDuePureSocio(t *testing.T) {
	calc := NewCalculator(testTable())

	quote, err := calc.ComputeDue(adult(user.EscalaoNone), nil, false)
	require.NoError(t, err)
	assert.True(t, quote.Total.Equal(dec("5.00")), "got %s", quote.Total)

	minor := Member{UserID: 2, IsMinor: true}
	quote, err = calc.ComputeDue(minor, nil, false)
	require.NoError(t, err)
	assert.True(t, quote.Total.Equal(dec("2.50")), "got %s", quote.Total)
}

func TestComputeDueFamilyMemberTriggersSiblingRate(t *testing.T) {
	calc := NewCalculator(testTable())

	quote, err := calc.ComputeDue(adult(user.Escalao2), []EnrollmentLine{
		{SportID: 1, SportName: "Basquetebol"},
	}, true)
	require.NoError(t, err)

	// 16.00 sibling rate + 5.00 global.
	require.Len(t, quote.Lines, 1)
	assert.True(t, quote.Lines[0].SiblingRate)
	assert.True(t, quote.Total.Equal(dec("21.00")), "got %s", quote.Total)
}

func TestComputeDueEscalao1QuotaIncludedIsExact(t *testing.T) {
	table := testTable()
	s := table.Sports[3]
	s.FeeEscalao1Normal = dec("25.00")
	s.FeeEscalao1Sibling = dec("15.00")
	table.Sports[3] = s
	calc := NewCalculator(table)

	quote, err := calc.ComputeDue(adult(user.Escalao1), []EnrollmentLine{
		{SportID: 3, SportName: "Futsal"},
	}, false)
	require.NoError(t, err)

	// Quota included: the sport fee is the whole amount, nothing on top.
	assert.True(t, quote.GlobalFeeWaived)
	assert.True(t, quote.Total.Equal(dec("25.00")), "got %s", quote.Total)
}

func TestComputeDueEscalao1(t *testing.T) {
	calc := NewCalculator(testTable())

	quote, err := calc.ComputeDue(adult(user.Escalao1), []EnrollmentLine{
		{SportID: 1, SportName: "Basquetebol"},
	}, false)
	require.NoError(t, err)
	assert.True(t, quote.Total.Equal(dec("30.00")), "got %s", quote.Total)
}

func TestComputeDueUnsetEscalaoBillsAtTier2(t *testing.T) {
	calc := NewCalculator(testTable())

	tier2, err := calc.ComputeDue(adult(user.Escalao2), []EnrollmentLine{{SportID: 1, SportName: "Basquetebol"}}, false)
	require.NoError(t, err)
	unset, err := calc.ComputeDue(adult(user.EscalaoNone), []EnrollmentLine{{SportID: 1, SportName: "Basquetebol"}}, false)
	require.NoError(t, err)

	assert.True(t, tier2.Total.Equal(unset.Total))
}

func TestComputeDueLegacyMonthlyFeeFallback(t *testing.T) {
	calc := NewCalculator(testTable())

	quote, err := calc.ComputeDue(adult(user.Escalao2), []EnrollmentLine{
		{SportID: 4, SportName: "Xadrez"},
	}, false)
	require.NoError(t, err)

	// The escalão rows are unset; the legacy flat fee applies: 10 + 5.
	assert.True(t, quote.Total.Equal(dec("15.00")), "got %s", quote.Total)
}

func TestComputeDueMissingFeeRow(t *testing.T) {
	calc := NewCalculator(testTable())

	_, err := calc.ComputeDue(adult(user.Escalao2), []EnrollmentLine{
		{SportID: 99, SportName: "Andebol"},
	}, false)
	require.ErrorIs(t, err, ErrMissingFeeRow)
}

func TestComputeDueRoundsOnlyAtTheEnd(t *testing.T) {
	table := testTable()
	s := table.Sports[1]
	s.FeeEscalao2Normal = dec("10.555")
	table.Sports[1] = s
	s2 := table.Sports[2]
	s2.FeeEscalao2Sibling = dec("10.555")
	table.Sports[2] = s2
	calc := NewCalculator(table)

	quote, err := calc.ComputeDue(adult(user.Escalao2), []EnrollmentLine{
		{SportID: 1, SportName: "Basquetebol"},
		{SportID: 2, SportName: "Natação"},
	}, false)
	require.NoError(t, err)

	// 10.555 + 10.555 + 5 = 26.11 after a single half-up rounding; rounding
	// each line first would give 26.12.
	assert.True(t, quote.Total.Equal(dec("26.11")), "got %s", quote.Total)
}

func TestSportDueAndInscription(t *testing.T) {
	table := testTable()
	s := table.Sports[1]
	s.InscriptionFeeNormal = dec("30.00")
	s.InscriptionFeeDiscount = dec("15.00")
	table.Sports[1] = s
	calc := NewCalculator(table)

	due, err := calc.SportDue(1, user.Escalao2, true)
	require.NoError(t, err)
	assert.True(t, due.Equal(dec("16.00")))

	insc, err := calc.InscriptionDue(1, false)
	require.NoError(t, err)
	assert.True(t, insc.Equal(dec("30.00")))

	insc, err = calc.InscriptionDue(1, true)
	require.NoError(t, err)
	assert.True(t, insc.Equal(dec("15.00")))

	_, err = calc.SportDue(99, user.Escalao2, false)
	assert.ErrorIs(t, err, ErrMissingFeeRow)
}
