package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	"github.com/skillforge-app/skillforge-backend/pkg/logger"
	"github.com/skillforge-app/skillforge-backend/pkg/utils"
	"gorm.io/gorm"
)

type LessonInput struct {
	Title      string            `json:"title" binding:"required"`
	Difficulty models.Difficulty `json:"difficulty" binding:"required"`
	Category   string            `json:"category" binding:"required"`
	SkillName  string            `json:"skillName" binding:"required"`
}

func validDifficulty(d models.Difficulty) bool {
	switch d {
	case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
		return true
	}
	return false
}

// CreateLesson adds a lesson to the catalog.
func CreateLesson(c *gin.Context) {
	var input LessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validDifficulty(input.Difficulty) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "difficulty must be BEGINNER, INTERMEDIATE or ADVANCED"})
		return
	}

	lesson := models.Lesson{
		ID:         utils.GenerateID(),
		Title:      utils.TruncateString(utils.SanitizeHTML(input.Title), 200),
		Difficulty: input.Difficulty,
		Category:   utils.TruncateString(utils.SanitizeHTML(input.Category), 100),
		SkillName:  utils.TruncateString(utils.SanitizeHTML(input.SkillName), 100),
	}
	if err := database.DB.Create(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Lesson already exists"})
			return
		}
		logger.Error().Err(err).Msg("Failed to create lesson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lesson"})
		return
	}

	logger.Info().Str("lessonId", lesson.ID).Str("title", lesson.Title).Msg("Lesson created")
	c.JSON(http.StatusCreated, gin.H{"lesson": lesson})
}

// UpdateLesson edits an existing catalog entry.
func UpdateLesson(c *gin.Context) {
	var input LessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validDifficulty(input.Difficulty) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "difficulty must be BEGINNER, INTERMEDIATE or ADVANCED"})
		return
	}

	res := database.DB.Model(&models.Lesson{}).Where("id = ?", c.Param("id")).
		Updates(map[string]interface{}{
			"title":      utils.TruncateString(utils.SanitizeHTML(input.Title), 200),
			"difficulty": input.Difficulty,
			"category":   utils.TruncateString(utils.SanitizeHTML(input.Category), 100),
			"skill_name": utils.TruncateString(utils.SanitizeHTML(input.SkillName), 100),
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	var lesson models.Lesson
	database.DB.First(&lesson, "id = ?", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"lesson": lesson})
}

// GetOverview returns platform-wide progression totals.
func GetOverview(c *gin.Context) {
	var users, lessons, completions, badgesEarned, claims int64
	database.DB.Model(&models.User{}).Count(&users)
	database.DB.Model(&models.Lesson{}).Count(&lessons)
	database.DB.Model(&models.LessonCompletion{}).Count(&completions)
	database.DB.Model(&models.UserBadge{}).Count(&badgesEarned)
	database.DB.Model(&models.ChallengeClaim{}).Count(&claims)

	var totalXP int
	database.DB.Model(&models.XPEvent{}).Select("COALESCE(SUM(amount), 0)").Scan(&totalXP)

	c.JSON(http.StatusOK, gin.H{
		"users":             users,
		"lessons":           lessons,
		"completions":       completions,
		"badgesEarned":      badgesEarned,
		"challengesClaimed": claims,
		"totalXPAwarded":    totalXP,
	})
}
