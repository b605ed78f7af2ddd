package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/skillforge-app/skillforge-backend/internal/handlers"
	"github.com/skillforge-app/skillforge-backend/internal/middleware"
)

func RegisterLessonRoutes(r gin.IRouter) {
	lessons := r.Group("/lessons")
	{
		lessons.GET("", handlers.ListLessons)

		protected := lessons.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/:id/complete", middleware.CompletionRateLimit(), handlers.CompleteLesson)
			protected.GET("/:id/progress", handlers.GetLessonProgress)
		}
	}
}
