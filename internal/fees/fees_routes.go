package fees

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cdp-clube/cdp-api/config"
	mw "github.com/cdp-clube/cdp-api/internal/middleware"
	"github.com/cdp-clube/cdp-api/internal/sport"
	"github.com/cdp-clube/cdp-api/internal/user"
	"github.com/cdp-clube/cdp-api/pkg/rmiddleware"
)

func RegisterFeeRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, jwtSecret string) {
	feeRepo := NewFeeRepository(db)
	sportRepo := sport.NewSportRepository(db)
	userRepo := user.NewUserRepository(db)
	feeController := NewFeeController(feeRepo, sportRepo, appConfig)

	public := router.Group("/fees")
	{
		public.GET("", feeController.GetFees)
	}

	admin := router.Group("/fees")
	admin.Use(mw.AuthMiddleware(jwtSecret, db))
	admin.Use(rmiddleware.AdminMiddleware(userRepo))
	{
		admin.POST("/global", feeController.UpdateGlobalFee)
		admin.POST("/sport/:sport_id", feeController.UpdateSportFee)
	}
}
