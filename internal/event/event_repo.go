package event

import (
	"time"

	"gorm.io/gorm"
)

type EventRepository interface {
	CreateEvent(event *Event) error
	CreateEvents(events []Event) error
	DeleteEventsByIDs(ids []uint) error

	// GetEventsByScheduleID returns every generated event whose provenance is
	// the given schedule, ordered by start time.
	GetEventsByScheduleID(scheduleID uint) ([]Event, error)

	GetEventsInRange(from, to time.Time, teamID uint) ([]Event, error)

	// WithTransaction runs txFunc against a repository bound to a single
	// database transaction.
	WithTransaction(txFunc func(EventRepository) error) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of EventRepository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateEvent(event *Event) error {
	return r.db.Create(event).Error
}

func (r *eventRepository) CreateEvents(events []Event) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.Create(&events).Error
}

func (r *eventRepository) DeleteEventsByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Unscoped().Delete(&Event{}, ids).Error
}

func (r *eventRepository) GetEventsByScheduleID(scheduleID uint) ([]Event, error) {
	var events []Event
	err := r.db.Where("schedule_id = ?", scheduleID).
		Order("start_date_time ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) GetEventsInRange(from, to time.Time, teamID uint) ([]Event, error) {
	query := r.db.Where("start_date_time >= ? AND start_date_time < ?", from, to)
	if teamID != 0 {
		query = query.Where("team_id = ?", teamID)
	}
	var events []Event
	err := query.Order("start_date_time ASC").Find(&events).Error
	return events, err
}

func (r *eventRepository) WithTransaction(txFunc func(EventRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&eventRepository{db: tx})
	})
}
