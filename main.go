package main

import (
	"log"

	"github.com/cdp-clube/cdp-api/config"
	_ "github.com/cdp-clube/cdp-api/docs"
	"github.com/cdp-clube/cdp-api/internal/event"
	"github.com/cdp-clube/cdp-api/internal/fees"
	"github.com/cdp-clube/cdp-api/internal/payment"
	"github.com/cdp-clube/cdp-api/internal/schedule"
	"github.com/cdp-clube/cdp-api/internal/sport"
	"github.com/cdp-clube/cdp-api/internal/team"
	"github.com/cdp-clube/cdp-api/internal/user"
	"github.com/cdp-clube/cdp-api/routes"
)

// @title CDP Clube REST API
// @version 1.0
// @description Club management backend: training schedules, calendar events, member quotas and payments.
// @host localhost:5285
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{}, &user.Role{}, &user.MemberProfile{},
		&user.AthleteProfile{}, &user.UserFamilyLink{},
		&sport.Sport{},
		&team.Team{}, &team.AthleteTeam{},
		&fees.SystemSetting{},
		&schedule.TrainingSchedule{},
		&event.Event{},
		&payment.Payment{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(config.DB, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
