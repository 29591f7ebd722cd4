package fees

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cdp-clube/cdp-api/config"
	"github.com/cdp-clube/cdp-api/internal/sport"
	"github.com/cdp-clube/cdp-api/pkg/responses"
	"github.com/cdp-clube/cdp-api/pkg/validator"
)

// FeeController handles the fee table admin surface.
type FeeController struct {
	repo      FeeRepository
	sportRepo sport.SportRepository
	config    *config.Config
}

// NewFeeController creates a new FeeController.
func NewFeeController(repo FeeRepository, sportRepo sport.SportRepository, cfg *config.Config) *FeeController {
	return &FeeController{
		repo:      repo,
		sportRepo: sportRepo,
		config:    cfg,
	}
}

// --- DTOs ---

type UpdateGlobalFeeRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	MinorAmount decimal.Decimal `json:"minor_amount" binding:"required"`
}

type UpdateSportFeeRequest struct {
	FeeEscalao1Normal      decimal.Decimal `json:"fee_escalao1_normal"`
	FeeEscalao1Sibling     decimal.Decimal `json:"fee_escalao1_sibling"`
	FeeEscalao2Normal      decimal.Decimal `json:"fee_escalao2_normal"`
	FeeEscalao2Sibling     decimal.Decimal `json:"fee_escalao2_sibling"`
	InscriptionFeeNormal   decimal.Decimal `json:"inscription_fee_normal"`
	InscriptionFeeDiscount decimal.Decimal `json:"inscription_fee_discount"`
	QuotaIncluded          *bool           `json:"quota_included"`
}

type FeeTableResponse struct {
	MemberFee      decimal.Decimal `json:"member_fee"`
	MinorMemberFee decimal.Decimal `json:"minor_member_fee"`
	Sports         []sport.Sport   `json:"sports"`
}

// --- Handlers ---

// GetFees godoc
// @Summary Get the full fee table
// @Description Returns the global sócio fees plus every sport fee row
// @Tags Fees
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=FeeTableResponse}
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /fees [get]
func (fc *FeeController) GetFees(c *gin.Context) {
	table, err := fc.repo.LoadFeeTable()
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to load fee table", err.Error())
		return
	}

	sports, err := fc.sportRepo.GetAllSports()
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to load sports", err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Fee table retrieved successfully", FeeTableResponse{
		MemberFee:      table.Global.Adult,
		MinorMemberFee: table.Global.Minor,
		Sports:         sports,
	})
}

// UpdateGlobalFee godoc
// @Summary Update the global sócio fees
// @Description Admin sets the adult and minor sócio quota amounts
// @Tags Fees
// @Accept json
// @Produce json
// @Param fees body UpdateGlobalFeeRequest true "Global fee amounts"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /fees/global [post]
// @Security BearerAuth
func (fc *FeeController) UpdateGlobalFee(c *gin.Context) {
	var req UpdateGlobalFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}
	if req.Amount.IsNegative() || req.MinorAmount.IsNegative() {
		responses.SendError(c, http.StatusBadRequest, "Fee amounts cannot be negative", nil)
		return
	}

	now := time.Now()
	settings := []SystemSetting{
		{Key: MemberFeeKey, Value: req.Amount.StringFixed(2), Description: "Quota mensal de sócio", UpdatedAt: now},
		{Key: MinorMemberFeeKey, Value: req.MinorAmount.StringFixed(2), Description: "Quota mensal de sócio (menor)", UpdatedAt: now},
	}
	for i := range settings {
		if err := fc.repo.UpsertSetting(&settings[i]); err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to update global fees", err.Error())
			return
		}
	}

	responses.SendSuccess(c, http.StatusOK, "Global member fees updated", nil)
}

// UpdateSportFee godoc
// @Summary Update a sport's fee row
// @Description Admin sets the per-escalão, sibling and inscription amounts for one sport
// @Tags Fees
// @Accept json
// @Produce json
// @Param sport_id path int true "Sport ID"
// @Param fees body UpdateSportFeeRequest true "Sport fee row"
// @Success 200 {object} responses.SuccessResponse{data=sport.Sport}
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 404 {object} responses.ErrorResponse "Sport not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /fees/sport/{sport_id} [post]
// @Security BearerAuth
func (fc *FeeController) UpdateSportFee(c *gin.Context) {
	sportID, err := strconv.ParseUint(c.Param("sport_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid sport ID format", nil)
		return
	}

	var req UpdateSportFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}
	for _, amount := range []decimal.Decimal{
		req.FeeEscalao1Normal, req.FeeEscalao1Sibling,
		req.FeeEscalao2Normal, req.FeeEscalao2Sibling,
		req.InscriptionFeeNormal, req.InscriptionFeeDiscount,
	} {
		if amount.IsNegative() {
			responses.SendError(c, http.StatusBadRequest, "Fee amounts cannot be negative", nil)
			return
		}
	}

	s, err := fc.sportRepo.GetSportByID(uint(sportID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve sport", err.Error())
		return
	}
	if s == nil {
		responses.SendError(c, http.StatusNotFound, "Sport not found", nil)
		return
	}

	s.FeeEscalao1Normal = req.FeeEscalao1Normal
	s.FeeEscalao1Sibling = req.FeeEscalao1Sibling
	s.FeeEscalao2Normal = req.FeeEscalao2Normal
	s.FeeEscalao2Sibling = req.FeeEscalao2Sibling
	s.InscriptionFeeNormal = req.InscriptionFeeNormal
	s.InscriptionFeeDiscount = req.InscriptionFeeDiscount
	if req.QuotaIncluded != nil {
		s.QuotaIncluded = *req.QuotaIncluded
	}
	// Keep the legacy fallback aligned with the standard rate.
	if req.FeeEscalao2Normal.IsPositive() {
		s.MonthlyFee = req.FeeEscalao2Normal
	}

	if err := fc.sportRepo.UpdateSport(s); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to update sport fees", err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Sport fees updated", s)
}
