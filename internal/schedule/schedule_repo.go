package schedule

import (
	"errors"

	"gorm.io/gorm"
)

type ScheduleRepository interface {
	CreateSchedule(schedule *TrainingSchedule) error
	GetScheduleByID(id uint) (*TrainingSchedule, error)
	GetAllSchedules(teamID, sportID uint) ([]TrainingSchedule, error)
	UpdateSchedule(schedule *TrainingSchedule) error
	DeleteSchedule(id uint) error
}

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new instance of ScheduleRepository.
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) CreateSchedule(schedule *TrainingSchedule) error {
	return r.db.Create(schedule).Error
}

func (r *scheduleRepository) GetScheduleByID(id uint) (*TrainingSchedule, error) {
	var schedule TrainingSchedule
	err := r.db.First(&schedule, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) GetAllSchedules(teamID, sportID uint) ([]TrainingSchedule, error) {
	query := r.db.Model(&TrainingSchedule{})
	if teamID != 0 {
		query = query.Where("team_id = ?", teamID)
	}
	if sportID != 0 {
		query = query.Joins("JOIN teams ON teams.id = training_schedules.team_id").
			Where("teams.sport_id = ?", sportID)
	}
	var schedules []TrainingSchedule
	err := query.Order("training_schedules.team_id ASC, training_schedules.id ASC").Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepository) UpdateSchedule(schedule *TrainingSchedule) error {
	return r.db.Save(schedule).Error
}

func (r *scheduleRepository) DeleteSchedule(id uint) error {
	return r.db.Delete(&TrainingSchedule{}, id).Error
}
