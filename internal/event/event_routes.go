package event

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cdp-clube/cdp-api/config"
	mw "github.com/cdp-clube/cdp-api/internal/middleware"
	"github.com/cdp-clube/cdp-api/internal/user"
	"github.com/cdp-clube/cdp-api/pkg/rmiddleware"
)

func RegisterEventRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, jwtSecret string) {
	eventRepo := NewEventRepository(db)
	userRepo := user.NewUserRepository(db)
	eventController := NewEventController(eventRepo, appConfig)

	events := router.Group("/events")
	events.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		events.GET("", eventController.GetEvents)
	}

	admin := router.Group("/events")
	admin.Use(mw.AuthMiddleware(jwtSecret, db))
	admin.Use(rmiddleware.CoachOrAdminMiddleware(userRepo))
	{
		admin.POST("", eventController.CreateEvent)
	}
}
