package schedule

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cdp-clube/cdp-api/internal/event"
)

// Validation failures reported before any storage write.
var (
	ErrNoWeekdays    = errors.New("schedule has no weekdays")
	ErrBadTimeWindow = errors.New("schedule end time must be after start time")
	ErrBadValidity   = errors.New("schedule validFrom must not be after validUntil")
	ErrWindowTooLong = errors.New("schedule validity window exceeds the maximum")
)

// maxWindowDays bounds a single materialization run. Three years of training
// covers every real schedule the club has ever set up.
const maxWindowDays = 3 * 366

// MaterializeResult reports the diff applied by one run.
type MaterializeResult struct {
	Created []event.Event `json:"created"`
	Removed []event.Event `json:"removed"`
	Kept    int           `json:"kept"`
}

// Materializer expands a TrainingSchedule into concrete training events and
// reconciles them against the events generated by previous runs.
//
// Only events carrying this schedule's provenance are considered: manual
// events and events generated from other schedules are never created,
// changed or deleted here, even when they coincide in time.
type Materializer struct {
	events event.EventRepository

	// One mutex per schedule ID serializes concurrent runs for the same
	// schedule so the diff/apply steps cannot interleave.
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewMaterializer creates a Materializer on top of the event store.
func NewMaterializer(events event.EventRepository) *Materializer {
	return &Materializer{
		events: events,
		locks:  make(map[uint]*sync.Mutex),
	}
}

func (m *Materializer) scheduleLock(id uint) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[id] = lock
	}
	return lock
}

// Validate checks a schedule's recurrence fields without touching storage.
func Validate(s *TrainingSchedule) error {
	if s.Weekdays.IsEmpty() {
		return ErrNoWeekdays
	}
	if !s.StartTime.Before(s.EndTime) {
		return ErrBadTimeWindow
	}
	from, until := dateOnly(s.ValidFrom), dateOnly(s.ValidUntil)
	if from.After(until) {
		return ErrBadValidity
	}
	if until.Sub(from) > maxWindowDays*24*time.Hour {
		return fmt.Errorf("%w (%d days)", ErrWindowTooLong, maxWindowDays)
	}
	return nil
}

// Materialize computes the target event set for the schedule, diffs it
// against the previously generated set, and applies the diff in a single
// transaction. Re-running with an unchanged schedule yields an empty diff.
func (m *Materializer) Materialize(s *TrainingSchedule, teamName string, sportID, actorID uint) (*MaterializeResult, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}

	lock := m.scheduleLock(s.ID)
	lock.Lock()
	defer lock.Unlock()

	target := m.expand(s, teamName, sportID, actorID)

	existing, err := m.events.GetEventsByScheduleID(s.ID)
	if err != nil {
		return nil, err
	}

	result := &MaterializeResult{}
	seen := make(map[int64]bool, len(existing))

	var staleIDs []uint
	for _, ev := range existing {
		key := ev.StartDateTime.Unix()
		want, ok := target[key]
		if ok && !seen[key] && sameEvent(&ev, &want) {
			seen[key] = true
			result.Kept++
			continue
		}
		// Stale: wrong slot, altered fields, or a duplicate from a bad run.
		staleIDs = append(staleIDs, ev.ID)
		result.Removed = append(result.Removed, ev)
	}

	for key, ev := range target {
		if !seen[key] {
			result.Created = append(result.Created, ev)
		}
	}

	if len(result.Created) == 0 && len(staleIDs) == 0 {
		return result, nil
	}

	err = m.events.WithTransaction(func(tx event.EventRepository) error {
		if err := tx.DeleteEventsByIDs(staleIDs); err != nil {
			return err
		}
		return tx.CreateEvents(result.Created)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// expand walks every calendar date in [ValidFrom, ValidUntil] and keeps the
// ones whose weekday is in the set, keyed by start timestamp. Plain date
// arithmetic keeps the run linear in the window length regardless of how the
// weekdays are spread.
func (m *Materializer) expand(s *TrainingSchedule, teamName string, sportID, actorID uint) map[int64]event.Event {
	scheduleID := s.ID
	teamID := s.TeamID
	target := make(map[int64]event.Event)

	from, until := dateOnly(s.ValidFrom), dateOnly(s.ValidUntil)
	for d := from; !d.After(until); d = d.AddDate(0, 0, 1) {
		if !s.Weekdays.Contains(d.Weekday()) {
			continue
		}
		start := s.StartTime.On(d)
		target[start.Unix()] = event.Event{
			Title:         "Treino - " + teamName,
			EventType:     event.TypeTraining,
			StartDateTime: start,
			EndDateTime:   s.EndTime.On(d),
			TeamID:        &teamID,
			SportID:       sportID,
			Location:      s.Location,
			Description:   fmt.Sprintf("Treino gerado automaticamente pelo padrão #%d", s.ID),
			ScheduleID:    &scheduleID,
			CreatedBy:     actorID,
		}
	}
	return target
}

func sameEvent(have, want *event.Event) bool {
	return have.StartDateTime.Equal(want.StartDateTime) &&
		have.EndDateTime.Equal(want.EndDateTime) &&
		have.Location == want.Location &&
		have.Title == want.Title
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
