package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cdp-clube/cdp-api/config"
	"github.com/cdp-clube/cdp-api/pkg/responses"
	"github.com/cdp-clube/cdp-api/pkg/token"
	"github.com/cdp-clube/cdp-api/pkg/utils"
	"github.com/cdp-clube/cdp-api/pkg/validator"
	hashutil "github.com/cdp-clube/cdp-api/utils"
)

// AuthController issues and refreshes the access/refresh token pair.
type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

// NewAuthController creates a new AuthController.
func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{repo: repo, config: cfg}
}

// Login godoc
// @Summary Login
// @Description Authenticates with email and password and returns an access/refresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	u, err := ac.repo.GetUserByEmail(req.Email)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Login failed", err.Error())
		return
	}
	// Same answer for unknown email and wrong password.
	if u == nil || !hashutil.CheckPassword(u.Password, req.Password) {
		responses.SendError(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	resp, err := ac.issueTokens(u.ID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to issue tokens", err.Error())
		return
	}

	if err := ac.repo.TouchLastActive(u.ID); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Login failed", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Login successful", resp)
}

// Refresh godoc
// @Summary Refresh tokens
// @Description Exchanges a valid refresh token for a new access/refresh pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param refresh body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 401 {object} responses.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (ac *AuthController) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	userID, err := utils.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Invalid refresh token", nil)
		return
	}

	resp, err := ac.issueTokens(userID)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Failed to refresh tokens", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tokens refreshed", resp)
}

func (ac *AuthController) issueTokens(userID uint) (*AuthResponse, error) {
	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errors.New("user no longer exists")
	}

	roles, err := ac.repo.GetUserRoles(u.ID)
	if err != nil {
		return nil, err
	}
	role := ""
	if len(roles) > 0 {
		role = roles[0]
	}

	access, err := token.GenerateJWT(u.ID, role, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateRefreshToken(u.ID, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         FilterUserRecord(u, roles),
	}, nil
}
