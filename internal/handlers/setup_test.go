package handlers

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/skillforge-app/skillforge-backend/internal/config"
	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	"github.com/skillforge-app/skillforge-backend/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// SetupTestDB initializes a fresh in-memory SQLite DB for handler tests.
func SetupTestDB(t *testing.T) {
	config.AppConfig = &config.Config{
		JWTSecret:           "test_secret_key_12345",
		LeaderboardCacheTTL: 0,
	}
	database.Redis = nil

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:handlerdb_%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Lesson{},
		&models.CompletionRecord{},
		&models.LessonCompletion{},
		&models.XPEvent{},
		&models.Badge{},
		&models.UserBadge{},
		&models.ChallengeState{},
		&models.ChallengeClaim{},
		&models.DailyActivity{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}

	database.DB = db
}

func createTestUser(t *testing.T, id string, xpPoints int) *models.User {
	info := services.ComputeLevel(xpPoints)
	user := models.User{
		ID:        id,
		Name:      "Test " + id,
		Email:     id + "@example.com",
		Username:  id,
		Role:      models.RoleUser,
		XPPoints:  xpPoints,
		Level:     info.Level,
		LevelName: info.LevelName,
		League:    services.LeagueOf(xpPoints),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user %s: %v", id, err)
	}
	return &user
}

func createTestLesson(t *testing.T, id string, difficulty models.Difficulty, category, skill string) *models.Lesson {
	lesson := models.Lesson{
		ID:         id,
		Title:      "Lesson " + id,
		Difficulty: difficulty,
		Category:   category,
		SkillName:  skill,
	}
	if err := database.DB.Create(&lesson).Error; err != nil {
		t.Fatalf("Failed to create test lesson %s: %v", id, err)
	}
	return &lesson
}
