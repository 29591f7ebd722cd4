package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekdaySet(t *testing.T) {
	set, err := ParseWeekdaySet([]string{"Tuesday", "thursday"})
	require.NoError(t, err)
	assert.True(t, set.Contains(time.Tuesday))
	assert.True(t, set.Contains(time.Thursday))
	assert.False(t, set.Contains(time.Monday))
	assert.Equal(t, []string{"Tuesday", "Thursday"}, set.Names())

	_, err = ParseWeekdaySet([]string{"Funday"})
	assert.Error(t, err)

	_, err = ParseWeekdaySet([]string{"Monday", "Monday"})
	assert.Error(t, err)

	empty, err := ParseWeekdaySet(nil)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestWeekdaySetJSONRoundTrip(t *testing.T) {
	set, err := ParseWeekdaySet([]string{"Monday", "Friday"})
	require.NoError(t, err)

	b, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `["Monday","Friday"]`, string(b))

	var decoded WeekdaySet
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, set, decoded)

	assert.Error(t, json.Unmarshal([]byte(`["Noday"]`), &decoded))
}

func TestWeekdaySetScanValidates(t *testing.T) {
	var set WeekdaySet
	require.NoError(t, set.Scan([]byte(`["Sunday"]`)))
	assert.True(t, set.Contains(time.Sunday))

	assert.Error(t, set.Scan([]byte(`["Caturday"]`)))
	assert.Error(t, set.Scan(42))
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("18:30")
	require.NoError(t, err)
	assert.Equal(t, "18:30", tod.String())
	assert.Equal(t, 18*60+30, tod.Minutes())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("half past six")
	assert.Error(t, err)
}

func TestTimeOfDayOnAndBefore(t *testing.T) {
	start, err := ParseTimeOfDay("18:30")
	require.NoError(t, err)
	end, err := ParseTimeOfDay("20:00")
	require.NoError(t, err)

	assert.True(t, start.Before(end))
	assert.False(t, end.Before(start))
	assert.False(t, start.Before(start))

	day := time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC)
	anchored := start.On(day)
	assert.Equal(t, time.Date(2025, time.January, 7, 18, 30, 0, 0, time.UTC), anchored)
}
