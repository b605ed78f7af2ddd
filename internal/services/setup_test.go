package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/skillforge-app/skillforge-backend/internal/config"
	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// SetupTestDB initializes a fresh in-memory SQLite DB for each test. Every
// call gets its own database so tests never see each other's rows.
func SetupTestDB(t *testing.T) {
	config.AppConfig = &config.Config{
		JWTSecret:           "test_secret_key_12345",
		LeaderboardCacheTTL: 0,
	}
	database.Redis = nil

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", n)
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
	info := ComputeLevel(xpPoints)
	user := models.User{
		ID:        id,
		Name:      "Test " + id,
		Email:     id + "@example.com",
		Username:  id,
		Role:      models.RoleUser,
		XPPoints:  xpPoints,
		Level:     info.Level,
		LevelName: info.LevelName,
		League:    LeagueOf(xpPoints),
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

func testNow() time.Time {
	return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

// interceptCreate runs fn on the open transaction right before the next
// INSERT into table, simulating a concurrent writer that got there first.
// Fires once; later inserts pass through untouched.
func interceptCreate(t *testing.T, table string, fn func(tx *gorm.DB) error) {
	t.Helper()
	fired := false
	err := database.DB.Callback().Create().Before("gorm:create").Register("test_intercept", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != table {
			return
		}
		fired = true
		if err := fn(tx.Session(&gorm.Session{NewDB: true})); err != nil {
			t.Errorf("Intercepted insert into %s failed: %v", table, err)
		}
	})
	if err != nil {
		t.Fatalf("Failed to register create callback: %v", err)
	}
}
