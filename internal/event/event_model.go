// event/model.go
package event

import (
	"time"

	"gorm.io/gorm"
)

type EventType string

const (
	TypeGame     EventType = "Game"
	TypeTraining EventType = "Training"
	TypeOther    EventType = "Other"
)

// Event is one calendar entry. Machine-generated training events carry a
// ScheduleID provenance link back to the schedule that produced them; manual
// events (games, one-off sessions) leave it nil and are never touched by
// materialization.
type Event struct {
	gorm.Model
	Title         string    `json:"title" gorm:"not null"`
	EventType     EventType `json:"event_type" gorm:"type:varchar(20);not null;index"`
	StartDateTime time.Time `json:"start_date_time" gorm:"not null;index"`
	EndDateTime   time.Time `json:"end_date_time" gorm:"not null"`
	TeamID        *uint     `json:"team_id" gorm:"index"` // nil for club-wide events
	SportID       uint      `json:"sport_id" gorm:"index"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`

	// Game-specific fields.
	OpponentName string `json:"opponent_name,omitempty"`
	IsHomeGame   *bool  `json:"is_home_game,omitempty"`

	// Provenance: set only on events generated from a training schedule.
	ScheduleID *uint `json:"schedule_id" gorm:"index"`

	CreatedBy uint `json:"created_by"`
}

// IsGenerated reports whether the event was produced by materialization.
func (e *Event) IsGenerated() bool { return e.ScheduleID != nil }
