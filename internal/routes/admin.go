package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/skillforge-app/skillforge-backend/internal/handlers"
	"github.com/skillforge-app/skillforge-backend/internal/middleware"
)

func RegisterAdminRoutes(r gin.IRouter) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		admin.GET("/overview", handlers.GetOverview)
		admin.POST("/lessons", handlers.CreateLesson)
		admin.PUT("/lessons/:id", handlers.UpdateLesson)
	}
}
