package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/cdp-clube/cdp-api/config"
	"github.com/cdp-clube/cdp-api/internal/auth"
	"github.com/cdp-clube/cdp-api/internal/event"
	"github.com/cdp-clube/cdp-api/internal/fees"
	"github.com/cdp-clube/cdp-api/internal/payment"
	"github.com/cdp-clube/cdp-api/internal/schedule"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{appConfig.App.FrontendURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "cdp-api", "status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	jwtSecret := appConfig.JWT.AccessTokenSecret

	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig)
	fees.RegisterFeeRoutes(api, db, appConfig, jwtSecret)
	schedule.RegisterScheduleRoutes(api, db, appConfig, jwtSecret)
	event.RegisterEventRoutes(api, db, appConfig, jwtSecret)
	payment.RegisterPaymentRoutes(api, db, appConfig, jwtSecret)

	return r
}
