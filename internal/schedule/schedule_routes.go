package schedule

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cdp-clube/cdp-api/config"
	"github.com/cdp-clube/cdp-api/internal/event"
	mw "github.com/cdp-clube/cdp-api/internal/middleware"
	"github.com/cdp-clube/cdp-api/internal/team"
	"github.com/cdp-clube/cdp-api/internal/user"
	"github.com/cdp-clube/cdp-api/pkg/rmiddleware"
)

func RegisterScheduleRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, jwtSecret string) {
	scheduleRepo := NewScheduleRepository(db)
	teamRepo := team.NewTeamRepository(db)
	userRepo := user.NewUserRepository(db)
	eventRepo := event.NewEventRepository(db)
	materializer := NewMaterializer(eventRepo)
	scheduleController := NewScheduleController(scheduleRepo, teamRepo, materializer, appConfig)

	schedules := router.Group("/trainingschedules")
	schedules.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		schedules.GET("", scheduleController.GetAllSchedules)
		schedules.GET("/:schedule_id", scheduleController.GetScheduleByID)
	}

	admin := router.Group("/trainingschedules")
	admin.Use(mw.AuthMiddleware(jwtSecret, db))
	admin.Use(rmiddleware.AdminMiddleware(userRepo))
	{
		admin.POST("", scheduleController.CreateSchedule)
		admin.PUT("/:schedule_id", scheduleController.UpdateSchedule)
		admin.DELETE("/:schedule_id", scheduleController.DeleteSchedule)
		admin.POST("/:schedule_id/generate", scheduleController.GenerateEvents)
	}
}
