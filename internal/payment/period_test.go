package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdp-clube/cdp-api/internal/user"
)

func TestPeriodNextDecemberRollsOver(t *testing.T) {
	next := Period{Month: 12, Year: 2025}.Next()
	assert.Equal(t, Period{Month: 1, Year: 2026}, next)

	next = Period{Month: 1, Year: 2025}.Next()
	assert.Equal(t, Period{Month: 2, Year: 2025}, next)

	next = Period{Month: 0, Year: 2025}.Next()
	assert.Equal(t, Period{Month: 0, Year: 2026}, next)
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Janeiro 2025", Period{Month: 1, Year: 2025}.Label())
	assert.Equal(t, "Dezembro 2024", Period{Month: 12, Year: 2024}.Label())
	assert.Equal(t, "Anuidade 2025", Period{Month: 0, Year: 2025}.Label())
}

func TestPeriodStart(t *testing.T) {
	start := Period{Month: 3, Year: 2025}.Start(time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), start)

	annual := Period{Month: 0, Year: 2025}.Start(time.UTC)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), annual)
}

func TestResolveCurrentAndNextMonthly(t *testing.T) {
	memberSince := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	completed := map[Period]bool{
		{Month: 3, Year: 2025}: true,
		{Month: 4, Year: 2025}: true,
	}

	due, next := ResolveCurrentAndNext(user.PreferenceMonthly, &memberSince, completed, now)
	require.NotNil(t, due)
	assert.Equal(t, Period{Month: 5, Year: 2025}, *due)
	assert.Equal(t, Period{Month: 6, Year: 2025}, next)
}

func TestResolveCurrentAndNextSkipsHolesInTheMiddle(t *testing.T) {
	memberSince := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	// February unpaid while March is settled: February is still first due.
	completed := map[Period]bool{
		{Month: 1, Year: 2025}: true,
		{Month: 3, Year: 2025}: true,
	}

	due, next := ResolveCurrentAndNext(user.PreferenceMonthly, &memberSince, completed, now)
	require.NotNil(t, due)
	assert.Equal(t, Period{Month: 2, Year: 2025}, *due)
	assert.Equal(t, Period{Month: 3, Year: 2025}, next)
}

func TestResolveCurrentAndNextFullyPaidUp(t *testing.T) {
	memberSince := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC)

	// November and December 2025 plus January 2026 all settled; the year
	// boundary must not resurface a period, and February opens up for
	// advance payment.
	completed := map[Period]bool{
		{Month: 11, Year: 2025}: true,
		{Month: 12, Year: 2025}: true,
		{Month: 1, Year: 2026}:  true,
	}

	due, next := ResolveCurrentAndNext(user.PreferenceMonthly, &memberSince, completed, now)
	assert.Nil(t, due)
	assert.Equal(t, Period{Month: 2, Year: 2026}, next)
}

func TestResolveCurrentAndNextNeverBeyondCurrentPeriod(t *testing.T) {
	memberSince := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)

	completed := map[Period]bool{{Month: 6, Year: 2025}: true}

	// The join month is paid and July has not started: nothing is due but
	// July is already payable in advance.
	due, next := ResolveCurrentAndNext(user.PreferenceMonthly, &memberSince, completed, now)
	assert.Nil(t, due)
	assert.Equal(t, Period{Month: 7, Year: 2025}, next)
}

func TestResolveCurrentAndNextWithoutJoinDate(t *testing.T) {
	now := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)

	due, next := ResolveCurrentAndNext(user.PreferenceMonthly, nil, nil, now)
	require.NotNil(t, due)
	assert.Equal(t, Period{Month: 6, Year: 2025}, *due)
	assert.Equal(t, Period{Month: 7, Year: 2025}, next)
}

func TestResolveCurrentAndNextAnnual(t *testing.T) {
	memberSince := time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	completed := map[Period]bool{
		{Month: 0, Year: 2023}: true,
		{Month: 0, Year: 2024}: true,
	}

	due, next := ResolveCurrentAndNext(user.PreferenceAnnual, &memberSince, completed, now)
	require.NotNil(t, due)
	assert.Equal(t, Period{Month: 0, Year: 2025}, *due)
	assert.Equal(t, Period{Month: 0, Year: 2026}, next)
}
