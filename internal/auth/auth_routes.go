package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cdp-clube/cdp-api/config"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	authRepo := NewAuthRepository(db)
	authController := NewAuthController(authRepo, appConfig)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/refresh", authController.Refresh)
	}
}
