package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	"github.com/skillforge-app/skillforge-backend/internal/services"
	"github.com/skillforge-app/skillforge-backend/pkg/logger"
)

type CompleteLessonInput struct {
	CorrectAnswers int `json:"correctAnswers"`
	TotalQuestions int `json:"totalQuestions" binding:"required"`
}

// CompleteLesson handles POST /lessons/:id/complete — the entry point of the
// progression pipeline.
func CompleteLesson(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CompleteLessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.CompleteLesson(userID, c.Param("id"),
		input.CorrectAnswers, input.TotalQuestions, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := services.UpdateStreak(userID, time.Now().UTC()); err != nil {
		logger.Warn().Err(err).Str("userId", userID).Msg("Streak update after completion failed")
	}

	// Badge criteria may have just been satisfied; evaluation is idempotent
	// so a failure here only delays the award to the next check.
	newBadges, err := services.CheckAndAwardBadges(userID, time.Now().UTC())
	if err != nil {
		logger.Warn().Err(err).Str("userId", userID).Msg("Badge check after completion failed")
	}

	c.JSON(http.StatusOK, gin.H{
		"result":    result,
		"newBadges": newBadges,
	})
}

// ListLessons returns the lesson catalog.
func ListLessons(c *gin.Context) {
	query := database.DB.Model(&models.Lesson{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var lessons []models.Lesson
	if err := query.Order("id asc").Find(&lessons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lessons"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

// GetLessonProgress returns the caller's ledger head for one lesson.
func GetLessonProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	record, err := services.GetCompletionRecord(userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": record})
}
