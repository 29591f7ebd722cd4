package payment

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cdp-clube/cdp-api/config"
	"github.com/cdp-clube/cdp-api/internal/fees"
	mw "github.com/cdp-clube/cdp-api/internal/middleware"
	"github.com/cdp-clube/cdp-api/internal/team"
	"github.com/cdp-clube/cdp-api/internal/user"
	"github.com/cdp-clube/cdp-api/pkg/rmiddleware"
)

func RegisterPaymentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, jwtSecret string) {
	paymentRepo := NewPaymentRepository(db)
	userRepo := user.NewUserRepository(db)
	teamRepo := team.NewTeamRepository(db)
	feeRepo := fees.NewFeeRepository(db)
	tracker := NewTracker(paymentRepo, userRepo, teamRepo, feeRepo, appConfig.Payment.MbEntity)
	paymentController := NewPaymentController(tracker, paymentRepo, userRepo, teamRepo, appConfig)

	payments := router.Group("/payment")
	payments.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		payments.GET("/quota", paymentController.GetQuotaStatus)
		payments.POST("/reference", paymentController.GenerateReference)
		payments.GET("/history", paymentController.GetHistory)
		payments.GET("/summary", paymentController.GetSummary)
	}

	admin := router.Group("/payment/admin")
	admin.Use(mw.AuthMiddleware(jwtSecret, db))
	admin.Use(rmiddleware.AdminMiddleware(userRepo))
	{
		admin.GET("/athletes-status", paymentController.GetAthletesStatus)
		admin.POST("/manual-payment", paymentController.RegisterManualPayment)
	}
}
