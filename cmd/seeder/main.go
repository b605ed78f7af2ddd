package main

import (
	"os"

	"github.com/skillforge-app/skillforge-backend/internal/config"
	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	"github.com/skillforge-app/skillforge-backend/internal/seeds"
	"github.com/skillforge-app/skillforge-backend/pkg/logger"
)

func main() {
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Msg("🌱 SkillForge Seeder starting...")

	database.Connect()

	err := database.DB.AutoMigrate(
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
		logger.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	seeds.SeedLessons()
	seeds.SeedBadges()
	seeds.SeedUsers()

	logger.Info().Msg("✅ Seeding complete")
}
