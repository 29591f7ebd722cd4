package team

import (
	"errors"

	"gorm.io/gorm"
)

// TeamRepository defines the interface for team and roster data operations.
type TeamRepository interface {
	GetTeamByID(id uint) (*Team, error)

	// GetActiveEnrollmentsByUserID returns every active roster entry owned by
	// the user (across all of their athlete profiles), oldest first.
	GetActiveEnrollmentsByUserID(userID uint) ([]Enrollment, error)

	// GetActiveEnrollmentsByUserIDs is the batched form used by admin
	// listings; the result keeps the oldest-first ordering per user.
	GetActiveEnrollmentsByUserIDs(userIDs []uint) ([]Enrollment, error)

	// ListAthleteUserIDs pages through the distinct users that own at least
	// one active roster entry, optionally filtered by team, sport or name.
	// A pageSize of zero or less returns the whole set unpaged.
	ListAthleteUserIDs(page, pageSize int, search string, teamID, sportID uint) ([]uint, int64, error)
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var team Team
	if err := r.db.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

const enrollmentSelect = `athlete_profiles.user_id AS user_id,
athlete_teams.athlete_profile_id AS athlete_profile_id,
athlete_teams.team_id AS team_id,
teams.name AS team_name,
teams.sport_id AS sport_id,
sports.name AS sport_name,
athlete_teams.joined_at AS joined_at`

func (r *teamRepository) enrollmentQuery() *gorm.DB {
	return r.db.Table("athlete_teams").
		Select(enrollmentSelect).
		Joins("JOIN athlete_profiles ON athlete_profiles.id = athlete_teams.athlete_profile_id").
		Joins("JOIN teams ON teams.id = athlete_teams.team_id").
		Joins("JOIN sports ON sports.id = teams.sport_id").
		Where("athlete_teams.is_active = ? AND athlete_teams.deleted_at IS NULL", true)
}

func (r *teamRepository) GetActiveEnrollmentsByUserID(userID uint) ([]Enrollment, error) {
	var enrollments []Enrollment
	err := r.enrollmentQuery().
		Where("athlete_profiles.user_id = ?", userID).
		Order("athlete_teams.joined_at ASC, athlete_teams.id ASC").
		Scan(&enrollments).Error
	return enrollments, err
}

func (r *teamRepository) GetActiveEnrollmentsByUserIDs(userIDs []uint) ([]Enrollment, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var enrollments []Enrollment
	err := r.enrollmentQuery().
		Where("athlete_profiles.user_id IN ?", userIDs).
		Order("athlete_profiles.user_id ASC, athlete_teams.joined_at ASC, athlete_teams.id ASC").
		Scan(&enrollments).Error
	return enrollments, err
}

func (r *teamRepository) ListAthleteUserIDs(page, pageSize int, search string, teamID, sportID uint) ([]uint, int64, error) {
	query := r.db.Table("athlete_teams").
		Joins("JOIN athlete_profiles ON athlete_profiles.id = athlete_teams.athlete_profile_id").
		Joins("JOIN teams ON teams.id = athlete_teams.team_id").
		Joins("JOIN users ON users.id = athlete_profiles.user_id").
		Where("athlete_teams.is_active = ? AND athlete_teams.deleted_at IS NULL", true)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("users.first_name ILIKE ? OR users.last_name ILIKE ? OR athlete_profiles.first_name ILIKE ? OR athlete_profiles.last_name ILIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if teamID != 0 {
		query = query.Where("athlete_teams.team_id = ?", teamID)
	}
	if sportID != 0 {
		query = query.Where("teams.sport_id = ?", sportID)
	}

	query = query.Distinct("athlete_profiles.user_id")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("athlete_profiles.user_id ASC")
	if pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var ids []uint
	if err := query.Pluck("athlete_profiles.user_id", &ids).Error; err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}
