package schedule

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cdp-clube/cdp-api/config"
	"github.com/cdp-clube/cdp-api/internal/middleware"
	"github.com/cdp-clube/cdp-api/internal/models"
	"github.com/cdp-clube/cdp-api/internal/team"
	"github.com/cdp-clube/cdp-api/pkg/responses"
	"github.com/cdp-clube/cdp-api/pkg/validator"
)

// ScheduleController handles API requests for training schedules and their
// materialization into calendar events.
type ScheduleController struct {
	repo         ScheduleRepository
	teamRepo     team.TeamRepository
	materializer *Materializer
	config       *config.Config
}

// NewScheduleController creates a new ScheduleController.
func NewScheduleController(repo ScheduleRepository, teamRepo team.TeamRepository, materializer *Materializer, cfg *config.Config) *ScheduleController {
	return &ScheduleController{
		repo:         repo,
		teamRepo:     teamRepo,
		materializer: materializer,
		config:       cfg,
	}
}

// --- DTOs ---

type ScheduleRequest struct {
	TeamID     uint     `json:"team_id" binding:"required"`
	DaysOfWeek []string `json:"days_of_week" binding:"required,min=1"`
	StartTime  string   `json:"start_time" binding:"required"`
	EndTime    string   `json:"end_time" binding:"required"`
	Location   string   `json:"location" binding:"omitempty,max=200"`
	ValidFrom  string   `json:"valid_from" binding:"required"` // YYYY-MM-DD
	ValidUntil string   `json:"valid_until" binding:"required"`
	IsActive   *bool    `json:"is_active"`
}

type GenerateEventsResponse struct {
	EventsCreated int    `json:"events_created"`
	EventsDeleted int    `json:"events_deleted"`
	EventsKept    int    `json:"events_kept"`
	Message       string `json:"message"`
}

// parse turns the wire representation into a validated TrainingSchedule.
// Every recurrence rule is checked here, before anything touches storage.
func (req *ScheduleRequest) parse(creatorID uint) (*TrainingSchedule, error) {
	weekdays, err := models.ParseWeekdaySet(req.DaysOfWeek)
	if err != nil {
		return nil, err
	}
	startTime, err := models.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := models.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, err
	}
	validFrom, err := time.Parse("2006-01-02", req.ValidFrom)
	if err != nil {
		return nil, fmt.Errorf("invalid valid_from date %q (expected YYYY-MM-DD)", req.ValidFrom)
	}
	validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
	if err != nil {
		return nil, fmt.Errorf("invalid valid_until date %q (expected YYYY-MM-DD)", req.ValidUntil)
	}

	s := &TrainingSchedule{
		TeamID:     req.TeamID,
		Weekdays:   weekdays,
		StartTime:  startTime,
		EndTime:    endTime,
		Location:   req.Location,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
		IsActive:   true,
		CreatedBy:  creatorID,
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// --- Handlers ---

// GetAllSchedules godoc
// @Summary List training schedules
// @Description Lists schedules, optionally filtered by team or sport
// @Tags TrainingSchedules
// @Produce json
// @Param team_id query int false "Filter by team"
// @Param sport_id query int false "Filter by sport"
// @Success 200 {object} responses.SuccessResponse{data=[]TrainingSchedule}
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /trainingschedules [get]
// @Security BearerAuth
func (sc *ScheduleController) GetAllSchedules(c *gin.Context) {
	teamID, _ := strconv.ParseUint(c.Query("team_id"), 10, 32)
	sportID, _ := strconv.ParseUint(c.Query("sport_id"), 10, 32)

	schedules, err := sc.repo.GetAllSchedules(uint(teamID), uint(sportID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve schedules", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Schedules retrieved successfully", schedules)
}

// GetScheduleByID godoc
// @Summary Get a training schedule
// @Tags TrainingSchedules
// @Produce json
// @Param schedule_id path int true "Schedule ID"
// @Success 200 {object} responses.SuccessResponse{data=TrainingSchedule}
// @Failure 404 {object} responses.ErrorResponse "Schedule not found"
// @Router /trainingschedules/{schedule_id} [get]
// @Security BearerAuth
func (sc *ScheduleController) GetScheduleByID(c *gin.Context) {
	schedule, ok := sc.loadSchedule(c)
	if !ok {
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Schedule retrieved successfully", schedule)
}

// CreateSchedule godoc
// @Summary Create a training schedule
// @Description Admin defines a weekly recurrence pattern for a team
// @Tags TrainingSchedules
// @Accept json
// @Produce json
// @Param schedule body ScheduleRequest true "Schedule definition"
// @Success 201 {object} responses.SuccessResponse{data=TrainingSchedule}
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /trainingschedules [post]
// @Security BearerAuth
func (sc *ScheduleController) CreateSchedule(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	schedule, err := req.parse(userID)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	t, err := sc.teamRepo.GetTeamByID(schedule.TeamID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to verify team", err.Error())
		return
	}
	if t == nil {
		responses.SendError(c, http.StatusNotFound, "Team not found", nil)
		return
	}

	if err := sc.repo.CreateSchedule(schedule); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create schedule", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Schedule created successfully", schedule)
}

// UpdateSchedule godoc
// @Summary Update a training schedule
// @Description Editing a pattern never touches already generated events; re-run generate to reconcile them
// @Tags TrainingSchedules
// @Accept json
// @Produce json
// @Param schedule_id path int true "Schedule ID"
// @Param schedule body ScheduleRequest true "Schedule definition"
// @Success 200 {object} responses.SuccessResponse{data=TrainingSchedule}
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 404 {object} responses.ErrorResponse "Schedule not found"
// @Router /trainingschedules/{schedule_id} [put]
// @Security BearerAuth
func (sc *ScheduleController) UpdateSchedule(c *gin.Context) {
	schedule, ok := sc.loadSchedule(c)
	if !ok {
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	parsed, err := req.parse(schedule.CreatedBy)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	schedule.TeamID = parsed.TeamID
	schedule.Weekdays = parsed.Weekdays
	schedule.StartTime = parsed.StartTime
	schedule.EndTime = parsed.EndTime
	schedule.Location = parsed.Location
	schedule.ValidFrom = parsed.ValidFrom
	schedule.ValidUntil = parsed.ValidUntil
	schedule.IsActive = parsed.IsActive

	if err := sc.repo.UpdateSchedule(schedule); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to update schedule", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Schedule updated successfully", schedule)
}

// DeleteSchedule godoc
// @Summary Delete a training schedule
// @Tags TrainingSchedules
// @Produce json
// @Param schedule_id path int true "Schedule ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Schedule not found"
// @Router /trainingschedules/{schedule_id} [delete]
// @Security BearerAuth
func (sc *ScheduleController) DeleteSchedule(c *gin.Context) {
	schedule, ok := sc.loadSchedule(c)
	if !ok {
		return
	}
	if err := sc.repo.DeleteSchedule(schedule.ID); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to delete schedule", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Schedule deleted successfully", nil)
}

// GenerateEvents godoc
// @Summary Materialize a schedule into training events
// @Description Expands the recurrence pattern over its validity window and reconciles previously generated events; idempotent
// @Tags TrainingSchedules
// @Produce json
// @Param schedule_id path int true "Schedule ID"
// @Success 200 {object} responses.SuccessResponse{data=GenerateEventsResponse}
// @Failure 400 {object} responses.ErrorResponse "Invalid schedule definition"
// @Failure 404 {object} responses.ErrorResponse "Schedule or team not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /trainingschedules/{schedule_id}/generate [post]
// @Security BearerAuth
func (sc *ScheduleController) GenerateEvents(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		return
	}

	schedule, ok := sc.loadSchedule(c)
	if !ok {
		return
	}

	t, err := sc.teamRepo.GetTeamByID(schedule.TeamID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to load team", err.Error())
		return
	}
	if t == nil {
		responses.SendError(c, http.StatusNotFound, "Team not found", nil)
		return
	}

	result, err := sc.materializer.Materialize(schedule, t.Name, t.SportID, userID)
	if err != nil {
		if isValidationError(err) {
			responses.SendError(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to generate events", err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Events generated", GenerateEventsResponse{
		EventsCreated: len(result.Created),
		EventsDeleted: len(result.Removed),
		EventsKept:    result.Kept,
		Message:       fmt.Sprintf("%d treinos criados para %s", len(result.Created), t.Name),
	})
}

func (sc *ScheduleController) loadSchedule(c *gin.Context) (*TrainingSchedule, bool) {
	id, err := strconv.ParseUint(c.Param("schedule_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid schedule ID format", nil)
		return nil, false
	}
	schedule, err := sc.repo.GetScheduleByID(uint(id))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve schedule", err.Error())
		return nil, false
	}
	if schedule == nil {
		responses.SendError(c, http.StatusNotFound, "Schedule not found", nil)
		return nil, false
	}
	return schedule, true
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrNoWeekdays) ||
		errors.Is(err, ErrBadTimeWindow) ||
		errors.Is(err, ErrBadValidity) ||
		errors.Is(err, ErrWindowTooLong)
}
