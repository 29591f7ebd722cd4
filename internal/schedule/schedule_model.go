// schedule/model.go
package schedule

import (
	"time"

	"gorm.io/gorm"

	"github.com/cdp-clube/cdp-api/internal/models"
)

// TrainingSchedule is a weekly recurrence pattern for one team: which
// weekdays, at what time window, over which validity range. It is expanded
// into concrete calendar events on explicit admin request, never
// automatically on edit.
type TrainingSchedule struct {
	gorm.Model
	TeamID     uint              `json:"team_id" gorm:"index;not null"`
	Weekdays   models.WeekdaySet `json:"days_of_week" gorm:"type:jsonb;not null"`
	StartTime  models.TimeOfDay  `json:"start_time" gorm:"type:varchar(5);not null"`
	EndTime    models.TimeOfDay  `json:"end_time" gorm:"type:varchar(5);not null"`
	Location   string            `json:"location"`
	ValidFrom  time.Time         `json:"valid_from" gorm:"type:date;not null"`
	ValidUntil time.Time         `json:"valid_until" gorm:"type:date;not null"`
	IsActive   bool              `json:"is_active" gorm:"default:true"`
	CreatedBy  uint              `json:"created_by"`
}
