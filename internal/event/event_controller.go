package event

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cdp-clube/cdp-api/config"
	"github.com/cdp-clube/cdp-api/internal/middleware"
	"github.com/cdp-clube/cdp-api/pkg/responses"
	"github.com/cdp-clube/cdp-api/pkg/validator"
)

// EventController serves the club calendar and manual event creation.
// Generated training events come from schedule materialization, not from
// here.
type EventController struct {
	repo   EventRepository
	config *config.Config
}

// NewEventController creates a new EventController.
func NewEventController(repo EventRepository, cfg *config.Config) *EventController {
	return &EventController{repo: repo, config: cfg}
}

type CreateEventRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	EventType    string `json:"event_type" binding:"required,oneof=Game Training Other"`
	StartDate    string `json:"start_date_time" binding:"required"` // RFC 3339
	EndDate      string `json:"end_date_time" binding:"required"`
	TeamID       *uint  `json:"team_id"`
	SportID      uint   `json:"sport_id"`
	Location     string `json:"location" binding:"omitempty,max=200"`
	Description  string `json:"description" binding:"omitempty,max=500"`
	OpponentName string `json:"opponent_name" binding:"omitempty,max=100"`
	IsHomeGame   *bool  `json:"is_home_game"`
}

// GetEvents godoc
// @Summary List calendar events
// @Description Events in a date range, optionally filtered by team; covers both manual entries and generated trainings
// @Tags Events
// @Produce json
// @Param from query string true "Range start (RFC 3339 or YYYY-MM-DD)"
// @Param to query string true "Range end (exclusive)"
// @Param team_id query int false "Filter by team"
// @Success 200 {object} responses.SuccessResponse{data=[]Event}
// @Failure 400 {object} responses.ErrorResponse "Invalid range"
// @Router /events [get]
// @Security BearerAuth
func (ec *EventController) GetEvents(c *gin.Context) {
	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid or missing from date", nil)
		return
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid or missing to date", nil)
		return
	}
	if !from.Before(to) {
		responses.SendError(c, http.StatusBadRequest, "from must be before to", nil)
		return
	}
	teamID, _ := strconv.ParseUint(c.Query("team_id"), 10, 32)

	events, err := ec.repo.GetEventsInRange(from, to, uint(teamID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve events", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Events retrieved successfully", events)
}

// CreateEvent godoc
// @Summary Create a calendar event
// @Description Manually adds a game or one-off event; manual events carry no schedule provenance and are never touched by generation
// @Tags Events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event"
// @Success 201 {object} responses.SuccessResponse{data=Event}
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Router /events [post]
// @Security BearerAuth
func (ec *EventController) CreateEvent(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid start_date_time (expected RFC 3339)", nil)
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid end_date_time (expected RFC 3339)", nil)
		return
	}
	if !start.Before(end) {
		responses.SendError(c, http.StatusBadRequest, "Event must end after it starts", nil)
		return
	}

	e := &Event{
		Title:         req.Title,
		EventType:     EventType(req.EventType),
		StartDateTime: start,
		EndDateTime:   end,
		TeamID:        req.TeamID,
		SportID:       req.SportID,
		Location:      req.Location,
		Description:   req.Description,
		OpponentName:  req.OpponentName,
		IsHomeGame:    req.IsHomeGame,
		CreatedBy:     userID,
	}
	if err := ec.repo.CreateEvent(e); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create event", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Event created successfully", e)
}

func parseDateParam(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
