package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	"github.com/skillforge-app/skillforge-backend/internal/services"
)

// GetProfile returns the caller's user record with derived level fields.
func GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"level": services.ComputeLevel(user.XPPoints),
	})
}

// GetStats returns the caller's progression dashboard numbers.
func GetStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var lessonsCompleted int64
	database.DB.Model(&models.CompletionRecord{}).Where("user_id = ?", userID).Count(&lessonsCompleted)

	var totalAttempts int64
	database.DB.Model(&models.LessonCompletion{}).Where("user_id = ?", userID).Count(&totalAttempts)

	var badgesEarned int64
	database.DB.Model(&models.UserBadge{}).Where("user_id = ?", userID).Count(&badgesEarned)

	var history []models.XPEvent
	database.DB.Where("user_id = ?", userID).Order("created_at desc").Limit(50).Find(&history)

	c.JSON(http.StatusOK, gin.H{
		"xpPoints":            user.XPPoints,
		"level":               services.ComputeLevel(user.XPPoints),
		"league":              user.League,
		"currentStreak":       user.CurrentStreak,
		"longestStreak":       user.LongestStreak,
		"challengesCompleted": user.ChallengesCompleted,
		"skillsMastered":      user.SkillsMastered,
		"lessonsCompleted":    lessonsCompleted,
		"totalAttempts":       totalAttempts,
		"badgesEarned":        badgesEarned,
		"xpHistory":           history,
	})
}
