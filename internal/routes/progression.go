package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/skillforge-app/skillforge-backend/internal/handlers"
	"github.com/skillforge-app/skillforge-backend/internal/middleware"
)

func RegisterBadgeRoutes(r gin.IRouter) {
	badges := r.Group("/badges")
	badges.Use(middleware.AuthMiddleware())
	{
		badges.GET("", handlers.GetBadges)
		badges.POST("/check", handlers.CheckBadges)
		badges.POST("/:id/claim", handlers.ClaimBadge)
	}
}

func RegisterChallengeRoutes(r gin.IRouter) {
	challenges := r.Group("/challenges")
	challenges.Use(middleware.AuthMiddleware())
	{
		challenges.GET("", handlers.GetChallenges)
		challenges.POST("/:id/claim", handlers.ClaimChallenge)
	}
}

func RegisterLeaderboardRoutes(r gin.IRouter) {
	leaderboard := r.Group("/leaderboard")
	{
		leaderboard.GET("", handlers.GetLeaderboard)
		leaderboard.GET("/my-rank", middleware.AuthMiddleware(), handlers.GetMyRank)
	}
}
