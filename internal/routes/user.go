package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/skillforge-app/skillforge-backend/internal/handlers"
	"github.com/skillforge-app/skillforge-backend/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter) {
	users := r.Group("/users")
	{
		profile := users.Group("/profile")
		profile.Use(middleware.AuthMiddleware())
		{
			profile.GET("", handlers.GetProfile)
			profile.GET("/stats", handlers.GetStats)
		}

		streak := users.Group("/streak")
		streak.Use(middleware.AuthMiddleware())
		{
			streak.GET("", handlers.GetStreak)
			streak.POST("/restore", handlers.RestoreStreak)
		}
	}
}
