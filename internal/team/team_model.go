// team/model.go
package team

import (
	"time"

	"gorm.io/gorm"
)

// Team represents a club team within one sport (e.g. an age bracket).
type Team struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	SportID     uint   `json:"sport_id" gorm:"index;not null"`
	CreatedByID uint   `json:"created_by_id" gorm:"index"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}

// AthleteTeam is the roster link: one athlete profile enrolled in one team.
type AthleteTeam struct {
	gorm.Model
	AthleteProfileID uint      `json:"athlete_profile_id" gorm:"index:idx_athlete_team,unique"`
	TeamID           uint      `json:"team_id" gorm:"index:idx_athlete_team,unique"`
	Position         string    `json:"position"`
	JerseyNumber     int       `json:"jersey_number"`
	JoinedAt         time.Time `json:"joined_at"`
	IsActive         bool      `json:"is_active" gorm:"default:true"`
}

// Enrollment is the read-side view of one active roster entry, resolved down
// to the owning user and the team's sport. Billing works off this flat shape
// instead of walking object graphs.
type Enrollment struct {
	UserID           uint      `json:"user_id"`
	AthleteProfileID uint      `json:"athlete_profile_id"`
	TeamID           uint      `json:"team_id"`
	TeamName         string    `json:"team_name"`
	SportID          uint      `json:"sport_id"`
	SportName        string    `json:"sport_name"`
	JoinedAt         time.Time `json:"joined_at"`
}
