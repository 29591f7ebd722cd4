package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cdp-clube/cdp-api/internal/event"
	"github.com/cdp-clube/cdp-api/internal/models"
)

// fakeEventStore is an in-memory EventRepository.
type fakeEventStore struct {
	nextID uint
	events map[uint]event.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{nextID: 1, events: make(map[uint]event.Event)}
}

func (f *fakeEventStore) CreateEvent(e *event.Event) error {
	e.ID = f.nextID
	f.nextID++
	f.events[e.ID] = *e
	return nil
}

func (f *fakeEventStore) CreateEvents(events []event.Event) error {
	for i := range events {
		if err := f.CreateEvent(&events[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeEventStore) DeleteEventsByIDs(ids []uint) error {
	for _, id := range ids {
		delete(f.events, id)
	}
	return nil
}

func (f *fakeEventStore) GetEventsByScheduleID(scheduleID uint) ([]event.Event, error) {
	var out []event.Event
	for _, e := range f.events {
		if e.ScheduleID != nil && *e.ScheduleID == scheduleID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) GetEventsInRange(from, to time.Time, teamID uint) ([]event.Event, error) {
	var out []event.Event
	for _, e := range f.events {
		if !e.StartDateTime.Before(from) && e.StartDateTime.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) WithTransaction(txFunc func(event.EventRepository) error) error {
	return txFunc(f)
}

func mustWeekdays(t *testing.T, names ...string) models.WeekdaySet {
	t.Helper()
	set, err := models.ParseWeekdaySet(names)
	require.NoError(t, err)
	return set
}

func mustTime(t *testing.T, s string) models.TimeOfDay {
	t.Helper()
	tod, err := models.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func januarySchedule(t *testing.T) *TrainingSchedule {
	t.Helper()
	return &TrainingSchedule{
		Model:      gorm.Model{ID: 7},
		TeamID:     3,
		Weekdays:   mustWeekdays(t, "Tuesday", "Thursday"),
		StartTime:  mustTime(t, "18:30"),
		EndTime:    mustTime(t, "20:00"),
		Location:   "Pavilhão Municipal",
		ValidFrom:  date(2025, time.January, 1),
		ValidUntil: date(2025, time.January, 31),
		IsActive:   true,
		CreatedBy:  1,
	}
}

func TestMaterializeJanuaryTueThu(t *testing.T) {
	store := newFakeEventStore()
	m := NewMaterializer(store)

	result, err := m.Materialize(januarySchedule(t), "Sub-15", 2, 1)
	require.NoError(t, err)

	// January 2025 has 4 Tuesdays and 5 Thursdays.
	assert.Len(t, result.Created, 9)
	assert.Empty(t, result.Removed)
	assert.Zero(t, result.Kept)

	stored, err := store.GetEventsByScheduleID(7)
	require.NoError(t, err)
	require.Len(t, stored, 9)
	for _, e := range stored {
		wd := e.StartDateTime.Weekday()
		assert.True(t, wd == time.Tuesday || wd == time.Thursday, "unexpected weekday %s", wd)
		assert.Equal(t, 18, e.StartDateTime.Hour())
		assert.Equal(t, 30, e.StartDateTime.Minute())
		assert.Equal(t, 20, e.EndDateTime.Hour())
		assert.Equal(t, event.TypeTraining, e.EventType)
		assert.Equal(t, "Treino - Sub-15", e.Title)
		assert.Equal(t, "Pavilhão Municipal", e.Location)
		require.NotNil(t, e.ScheduleID)
		assert.Equal(t, uint(7), *e.ScheduleID)
	}
}

func TestMaterializeIsIdempotent(t *testing.T) {
	store := newFakeEventStore()
	m := NewMaterializer(store)
	s := januarySchedule(t)

	_, err := m.Materialize(s, "Sub-15", 2, 1)
	require.NoError(t, err)

	again, err := m.Materialize(s, "Sub-15", 2, 1)
	require.NoError(t, err)
	assert.Empty(t, again.Created)
	assert.Empty(t, again.Removed)
	assert.Equal(t, 9, again.Kept)
	assert.Len(t, store.events, 9)
}

func TestMaterializeReconcilesPatternChange(t *testing.T) {
	store := newFakeEventStore()
	m := NewMaterializer(store)
	s := januarySchedule(t)

	_, err := m.Materialize(s, "Sub-15", 2, 1)
	require.NoError(t, err)

	s.Weekdays = mustWeekdays(t, "Monday")
	result, err := m.Materialize(s, "Sub-15", 2, 1)
	require.NoError(t, err)

	// All Tue/Thu events go, the 4 January Mondays come in.
	assert.Len(t, result.Removed, 9)
	assert.Len(t, result.Created, 4)
	assert.Zero(t, result.Kept)
	assert.Len(t, store.events, 4)
}

func TestMaterializeKeepsOverlapOnWindowChange(t *testing.T) {
	store := newFakeEventStore()
	m := NewMaterializer(store)
	s := januarySchedule(t)

	_, err := m.Materialize(s, "Sub-15", 2, 1)
	require.NoError(t, err)

	// Shrink the window to the middle two weeks; events inside it survive.
	s.ValidFrom = date(2025, time.January, 6)
	s.ValidUntil = date(2025, time.January, 19)
	result, err := m.Materialize(s, "Sub-15", 2, 1)
	require.NoError(t, err)

	assert.Empty(t, result.Created)
	assert.Len(t, result.Removed, 5)
	assert.Equal(t, 4, result.Kept)
}

func TestMaterializeLeavesForeignEventsAlone(t *testing.T) {
	store := newFakeEventStore()
	m := NewMaterializer(store)
	s := januarySchedule(t)

	otherSchedule := uint(99)
	manual := event.Event{
		Title:         "Jogo - Sub-15",
		EventType:     event.TypeGame,
		StartDateTime: time.Date(2025, time.January, 7, 18, 30, 0, 0, time.UTC),
		EndDateTime:   time.Date(2025, time.January, 7, 20, 0, 0, 0, time.UTC),
	}
	foreign := event.Event{
		Title:         "Treino - Sub-17",
		EventType:     event.TypeTraining,
		StartDateTime: time.Date(2025, time.January, 7, 18, 30, 0, 0, time.UTC),
		EndDateTime:   time.Date(2025, time.January, 7, 20, 0, 0, 0, time.UTC),
		ScheduleID:    &otherSchedule,
	}
	require.NoError(t, store.CreateEvent(&manual))
	require.NoError(t, store.CreateEvent(&foreign))

	_, err := m.Materialize(s, "Sub-15", 2, 1)
	require.NoError(t, err)

	// Both coincide in time with generated events but have different (or no)
	// provenance, so they must survive untouched.
	_, manualAlive := store.events[manual.ID]
	_, foreignAlive := store.events[foreign.ID]
	assert.True(t, manualAlive)
	assert.True(t, foreignAlive)
	assert.Len(t, store.events, 11)
}

func TestMaterializeRemovesDuplicateSlots(t *testing.T) {
	store := newFakeEventStore()
	m := NewMaterializer(store)
	s := januarySchedule(t)

	_, err := m.Materialize(s, "Sub-15", 2, 1)
	require.NoError(t, err)

	// Inject a duplicate for an occupied slot, as a bad historical run would
	// have left behind.
	sid := uint(7)
	dup := event.Event{
		Title:         "Treino - Sub-15",
		EventType:     event.TypeTraining,
		StartDateTime: time.Date(2025, time.January, 7, 18, 30, 0, 0, time.UTC),
		EndDateTime:   time.Date(2025, time.January, 7, 20, 0, 0, 0, time.UTC),
		Location:      "Pavilhão Municipal",
		ScheduleID:    &sid,
	}
	require.NoError(t, store.CreateEvent(&dup))

	result, err := m.Materialize(s, "Sub-15", 2, 1)
	require.NoError(t, err)

	assert.Len(t, result.Removed, 1)
	assert.Equal(t, 9, result.Kept)
	assert.Len(t, store.events, 9)
}

func TestValidateRejectsBadSchedules(t *testing.T) {
	base := januarySchedule(t)

	s := *base
	s.Weekdays = 0
	assert.ErrorIs(t, Validate(&s), ErrNoWeekdays)

	s = *base
	s.EndTime = s.StartTime
	assert.ErrorIs(t, Validate(&s), ErrBadTimeWindow)

	s = *base
	s.ValidFrom = date(2025, time.February, 1)
	s.ValidUntil = date(2025, time.January, 1)
	assert.ErrorIs(t, Validate(&s), ErrBadValidity)

	s = *base
	s.ValidUntil = s.ValidFrom.AddDate(4, 0, 0)
	assert.ErrorIs(t, Validate(&s), ErrWindowTooLong)

	assert.NoError(t, Validate(base))
}
