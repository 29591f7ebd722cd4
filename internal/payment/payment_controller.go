package payment

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cdp-clube/cdp-api/config"
	"github.com/cdp-clube/cdp-api/internal/fees"
	"github.com/cdp-clube/cdp-api/internal/middleware"
	"github.com/cdp-clube/cdp-api/internal/team"
	"github.com/cdp-clube/cdp-api/internal/user"
	"github.com/cdp-clube/cdp-api/pkg/responses"
	"github.com/cdp-clube/cdp-api/pkg/validator"
)

// PaymentController handles quota status, reference allocation, payment
// history and the admin payment surface.
type PaymentController struct {
	tracker  *Tracker
	payments PaymentRepository
	users    user.UserRepository
	teams    team.TeamRepository
	config   *config.Config
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(tracker *Tracker, payments PaymentRepository, users user.UserRepository, teams team.TeamRepository, cfg *config.Config) *PaymentController {
	return &PaymentController{
		tracker:  tracker,
		payments: payments,
		users:    users,
		teams:    teams,
		config:   cfg,
	}
}

// --- DTOs ---

type HistoryEntry struct {
	ID          uint            `json:"id"`
	PeriodLabel string          `json:"period_label"`
	PeriodMonth int             `json:"period_month"`
	PeriodYear  int             `json:"period_year"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Method      string          `json:"payment_method,omitempty"`
	Entity      string          `json:"entity,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
}

type PaymentSummary struct {
	Year          int             `json:"year"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	PaidPeriods   int             `json:"paid_periods"`
	PendingCount  int             `json:"pending_count"`
	UpToDate      bool            `json:"up_to_date"`
	NextDueLabel  string          `json:"next_due_label,omitempty"`
	NextDueAmount decimal.Decimal `json:"next_due_amount"`
}

type AthleteStatusRow struct {
	UserID           uint            `json:"user_id"`
	Name             string          `json:"name"`
	MembershipNumber string          `json:"membership_number,omitempty"`
	Preference       string          `json:"payment_preference"`
	Teams            []string        `json:"teams"`
	PeriodLabel      string          `json:"period_label,omitempty"`
	AmountDue        decimal.Decimal `json:"amount_due"`
	Status           string          `json:"status"`
	UpToDate         bool            `json:"up_to_date"`
}

type ManualPaymentRequest struct {
	UserID      uint    `json:"user_id" binding:"required"`
	Month       int     `json:"period_month" binding:"min=0,max=12"`
	Year        int     `json:"period_year" binding:"required"`
	Status      string  `json:"status" binding:"required,oneof=Unpaid Completed"`
	Method      string  `json:"payment_method" binding:"omitempty,max=50"`
	Description string  `json:"description" binding:"omitempty,max=200"`
	Amount      *string `json:"amount"` // decimal string, overrides the computed amount
}

// --- Handlers ---

// GetQuotaStatus godoc
// @Summary Get quota status
// @Description Returns the next unpaid billing period and its quoted amount; admins may query any user via user_id
// @Tags Payments
// @Produce json
// @Param user_id query int false "Target user (admin only)"
// @Success 200 {object} responses.SuccessResponse{data=QuotaStatus}
// @Failure 403 {object} responses.ErrorResponse "Not allowed to query another user"
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Failure 422 {object} responses.ErrorResponse "Fee configuration missing"
// @Router /payment/quota [get]
// @Security BearerAuth
func (pc *PaymentController) GetQuotaStatus(c *gin.Context) {
	userID, ok := pc.resolveTargetUser(c)
	if !ok {
		return
	}
	status, err := pc.tracker.GetQuotaStatus(userID)
	if err != nil {
		pc.sendTrackerError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Quota status retrieved successfully", status)
}

// GenerateReference godoc
// @Summary Generate a payment reference
// @Description Allocates a Multibanco-style entity/reference pair for one billing period; idempotent while the period is pending
// @Tags Payments
// @Produce json
// @Param user_id query int false "Target user (admin only)"
// @Param year query int false "Billing year (defaults to the period due, or the next one when paid up)"
// @Param month query int false "Billing month (1-12; omit for annual members)"
// @Success 200 {object} responses.SuccessResponse{data=Payment}
// @Failure 400 {object} responses.ErrorResponse "Invalid period"
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Failure 409 {object} responses.ErrorResponse "Period already completed"
// @Failure 422 {object} responses.ErrorResponse "Fee configuration missing"
// @Router /payment/reference [post]
// @Security BearerAuth
func (pc *PaymentController) GenerateReference(c *gin.Context) {
	userID, ok := pc.resolveTargetUser(c)
	if !ok {
		return
	}
	var month, year int
	if rawYear := c.Query("year"); rawYear == "" {
		// No explicit period: bill the one due, or open the next period
		// for advance payment when the member is paid up.
		status, err := pc.tracker.GetQuotaStatus(userID)
		if err != nil {
			pc.sendTrackerError(c, err)
			return
		}
		if status.UpToDate {
			month, year = status.NextPeriod.Month, status.NextPeriod.Year
		} else {
			month, year = status.Period.Month, status.Period.Year
		}
	} else {
		var err error
		year, err = strconv.Atoi(rawYear)
		if err != nil {
			responses.SendError(c, http.StatusBadRequest, "Invalid year", nil)
			return
		}
		if m := c.Query("month"); m != "" {
			month, err = strconv.Atoi(m)
			if err != nil {
				responses.SendError(c, http.StatusBadRequest, "Invalid month", nil)
				return
			}
		}
	}

	payment, err := pc.tracker.GenerateReference(userID, month, year)
	if err != nil {
		pc.sendTrackerError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Payment reference generated", payment)
}

// GetHistory godoc
// @Summary Payment history
// @Description Full payment history for a member, most recent period first
// @Tags Payments
// @Produce json
// @Param user_id query int false "Target user (admin only)"
// @Success 200 {object} responses.SuccessResponse{data=[]HistoryEntry}
// @Router /payment/history [get]
// @Security BearerAuth
func (pc *PaymentController) GetHistory(c *gin.Context) {
	userID, ok := pc.resolveTargetUser(c)
	if !ok {
		return
	}
	payments, err := pc.payments.GetPaymentsByUserID(userID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve payment history", err.Error())
		return
	}

	history := make([]HistoryEntry, 0, len(payments))
	for _, p := range payments {
		history = append(history, HistoryEntry{
			ID:          p.ID,
			PeriodLabel: p.Period().Label(),
			PeriodMonth: p.PeriodMonth,
			PeriodYear:  p.PeriodYear,
			Amount:      p.Amount,
			Status:      p.Status,
			Method:      p.PaymentMethod,
			Entity:      p.Entity,
			Reference:   p.Reference,
			PaymentDate: p.PaymentDate,
		})
	}
	responses.SendSuccess(c, http.StatusOK, "Payment history retrieved successfully", history)
}

// GetSummary godoc
// @Summary Payment summary
// @Description Dashboard card for the authenticated member: totals for the current year and the next amount due
// @Tags Payments
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=PaymentSummary}
// @Router /payment/summary [get]
// @Security BearerAuth
func (pc *PaymentController) GetSummary(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		return
	}

	payments, err := pc.payments.GetPaymentsByUserID(userID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve payments", err.Error())
		return
	}

	summary := PaymentSummary{
		Year:          time.Now().Year(),
		TotalPaid:     decimal.Zero,
		NextDueAmount: decimal.Zero,
	}
	for _, p := range payments {
		if p.PeriodYear != summary.Year {
			continue
		}
		switch p.Status {
		case StatusCompleted:
			summary.TotalPaid = summary.TotalPaid.Add(p.Amount)
			summary.PaidPeriods++
		case StatusPending:
			summary.PendingCount++
		}
	}

	status, err := pc.tracker.GetQuotaStatus(userID)
	if err != nil {
		pc.sendTrackerError(c, err)
		return
	}
	summary.UpToDate = status.UpToDate
	if status.Quote != nil {
		summary.NextDueLabel = status.PeriodLabel
		summary.NextDueAmount = status.Quote.Total
	}
	responses.SendSuccess(c, http.StatusOK, "Payment summary retrieved successfully", summary)
}

// GetAthletesStatus godoc
// @Summary Athletes payment status
// @Description Paginated per-athlete billing status for one period (defaults to the current month), filterable by team, sport, name or status
// @Tags Payments
// @Produce json
// @Param month query int false "Billing month (defaults to current)"
// @Param year query int false "Billing year (defaults to current)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Param search query string false "Name search"
// @Param team_id query int false "Filter by team"
// @Param sport_id query int false "Filter by sport"
// @Param status query string false "Filter by payment status"
// @Success 200 {object} responses.PaginatedResponse{data=[]AthleteStatusRow}
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /payment/admin/athletes-status [get]
// @Security BearerAuth
func (pc *PaymentController) GetAthletesStatus(c *gin.Context) {
	now := time.Now()
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	teamID, _ := strconv.ParseUint(c.Query("team_id"), 10, 32)
	sportID, _ := strconv.ParseUint(c.Query("sport_id"), 10, 32)
	statusFilter := c.Query("status")

	// The status is computed per row, so a status filter cannot be pushed
	// into SQL; the full candidate set is loaded and paged after filtering.
	listPage, listSize := page, pageSize
	if statusFilter != "" {
		listPage, listSize = 1, 0
	}
	userIDs, total, err := pc.teams.ListAthleteUserIDs(listPage, listSize, c.Query("search"), uint(teamID), uint(sportID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to list athletes", err.Error())
		return
	}

	enrollments, err := pc.teams.GetActiveEnrollmentsByUserIDs(userIDs)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to load enrollments", err.Error())
		return
	}
	teamsByUser := make(map[uint][]string)
	for _, e := range enrollments {
		teamsByUser[e.UserID] = append(teamsByUser[e.UserID], e.TeamName)
	}

	rows := make([]AthleteStatusRow, 0, len(userIDs))
	for _, id := range userIDs {
		u, err := pc.users.GetUserByID(id)
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to load user", err.Error())
			return
		}
		if u == nil {
			continue
		}

		row := AthleteStatusRow{
			UserID:      id,
			Name:        u.FullName(),
			Teams:       teamsByUser[id],
			PeriodLabel: Period{Month: month, Year: year}.Label(),
			AmountDue:   decimal.Zero,
			Status:      StatusUnpaid,
		}
		if u.MemberProfile != nil {
			row.MembershipNumber = u.MemberProfile.MembershipNumber
			row.Preference = u.MemberProfile.PaymentPreference
		}

		p, quote, err := pc.tracker.PeriodStatus(id, month, year)
		switch {
		case errors.Is(err, fees.ErrMissingFeeRow):
			// A misconfigured fee row must not hide the athlete from the list.
			row.Status = "ConfigurationError"
		case err != nil:
			pc.sendTrackerError(c, err)
			return
		default:
			if p != nil {
				row.Status = p.Status
			}
			row.UpToDate = row.Status == StatusCompleted
			row.AmountDue = quote.Total
		}

		if statusFilter != "" && !strings.EqualFold(row.Status, statusFilter) {
			continue
		}
		rows = append(rows, row)
	}

	if statusFilter != "" {
		total = int64(len(rows))
		start := (page - 1) * pageSize
		if start > len(rows) {
			start = len(rows)
		}
		end := start + pageSize
		if end > len(rows) {
			end = len(rows)
		}
		rows = rows[start:end]
	}

	responses.SendPaginated(c, http.StatusOK, "Athletes payment status retrieved", rows, total, page, pageSize)
}

// RegisterManualPayment godoc
// @Summary Register a manual payment
// @Description Admin override: validates a cash/transfer settlement or corrects a period's status; creates the row when absent
// @Tags Payments
// @Accept json
// @Produce json
// @Param payment body ManualPaymentRequest true "Override"
// @Success 200 {object} responses.SuccessResponse{data=Payment}
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Router /payment/admin/manual-payment [post]
// @Security BearerAuth
func (pc *PaymentController) RegisterManualPayment(c *gin.Context) {
	actorID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		return
	}

	var req ManualPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	var amount *decimal.Decimal
	if req.Amount != nil {
		parsed, err := decimal.NewFromString(*req.Amount)
		if err != nil || parsed.IsNegative() {
			responses.SendError(c, http.StatusBadRequest, "Amount must be a non-negative decimal", nil)
			return
		}
		amount = &parsed
	}

	payment, err := pc.tracker.AdminSetStatus(actorID, req.UserID, req.Month, req.Year, req.Status, req.Method, req.Description, amount)
	if err != nil {
		pc.sendTrackerError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Payment registered successfully", payment)
}

// --- helpers ---

// resolveTargetUser returns the user the request operates on: the caller
// themselves, or the user_id query value when the caller is an Admin.
func (pc *PaymentController) resolveTargetUser(c *gin.Context) (uint, bool) {
	authID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		return 0, false
	}

	raw := c.Query("user_id")
	if raw == "" {
		return authID, true
	}
	target, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid user_id", nil)
		return 0, false
	}
	if uint(target) == authID {
		return authID, true
	}

	roles, err := pc.users.GetUserRoles(authID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to verify permissions", err.Error())
		return 0, false
	}
	for _, r := range roles {
		if strings.EqualFold(r, "admin") {
			return uint(target), true
		}
	}
	responses.SendError(c, http.StatusForbidden, "Only admins may query other users", nil)
	return 0, false
}

func (pc *PaymentController) sendTrackerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		responses.SendError(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, ErrPeriodCompleted):
		responses.SendError(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, ErrBadPeriod), errors.Is(err, ErrBadStatus):
		responses.SendError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, fees.ErrMissingFeeRow):
		responses.SendError(c, http.StatusUnprocessableEntity, err.Error(), nil)
	default:
		responses.SendError(c, http.StatusInternalServerError, "Payment operation failed", err.Error())
	}
}
