package seeds

import (
	"errors"
	"log"

	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	"gorm.io/gorm"
)

func SeedBadges() {
	log.Println("🎖️ Seeding Badge Catalog...")

	badges := []models.Badge{
		{
			ID:          "badge_first_lesson",
			Name:        "First Steps",
			Description: "Completed your first lesson.",
			Icon:        "footprints",
			Criteria:    models.CriteriaLessonsCompleted,
			Threshold:   1,
			XPReward:    25,
			Rarity:      models.RarityCommon,
		},
		{
			ID:          "badge_ten_lessons",
			Name:        "Dedicated Learner",
			Description: "Completed 10 lessons.",
			Icon:        "book-open",
			Criteria:    models.CriteriaLessonsCompleted,
			Threshold:   10,
			XPReward:    75,
			Rarity:      models.RarityCommon,
		},
		{
			ID:          "badge_fifty_lessons",
			Name:        "Knowledge Seeker",
			Description: "Completed 50 lessons. A true scholar.",
			Icon:        "graduation-cap",
			Criteria:    models.CriteriaLessonsCompleted,
			Threshold:   50,
			XPReward:    200,
			Rarity:      models.RarityEpic,
		},
		{
			ID:          "badge_week_streak",
			Name:        "On Fire",
			Description: "Kept a 7-day learning streak alive.",
			Icon:        "flame",
			Criteria:    models.CriteriaStreak,
			Threshold:   7,
			XPReward:    100,
			Rarity:      models.RarityRare,
		},
		{
			ID:          "badge_month_streak",
			Name:        "Unstoppable",
			Description: "Kept a 30-day learning streak alive.",
			Icon:        "zap",
			Criteria:    models.CriteriaStreak,
			Threshold:   30,
			XPReward:    300,
			Rarity:      models.RarityLegendary,
		},
		{
			ID:          "badge_perfect_test",
			Name:        "Perfectionist",
			Description: "Scored 100% on a test.",
			Icon:        "target",
			Criteria:    models.CriteriaPerfectTests,
			Threshold:   1,
			XPReward:    50,
			Rarity:      models.RarityCommon,
		},
		{
			ID:          "badge_ten_perfect",
			Name:        "Sharpshooter",
			Description: "Scored 100% on 10 tests.",
			Icon:        "crosshair",
			Criteria:    models.CriteriaPerfectTests,
			Threshold:   10,
			XPReward:    150,
			Rarity:      models.RarityEpic,
		},
		{
			ID:          "badge_five_a_day",
			Name:        "Power Session",
			Description: "Completed 5 lessons in a single day.",
			Icon:        "battery-charging",
			Criteria:    models.CriteriaLessonsPerDay,
			Threshold:   5,
			XPReward:    80,
			Rarity:      models.RarityRare,
		},
		{
			ID:          "badge_five_challenges",
			Name:        "Challenger",
			Description: "Claimed 5 challenge rewards.",
			Icon:        "swords",
			Criteria:    models.CriteriaChallengesCompleted,
			Threshold:   5,
			XPReward:    100,
			Rarity:      models.RarityRare,
		},
		{
			ID:          "badge_xp_1000",
			Name:        "Rising Star",
			Description: "Earned 1,000 XP.",
			Icon:        "star",
			Criteria:    models.CriteriaXPEarned,
			Threshold:   1000,
			XPReward:    50,
			Rarity:      models.RarityCommon,
		},
		{
			ID:          "badge_xp_10000",
			Name:        "XP Titan",
			Description: "Earned 10,000 XP.",
			Icon:        "trophy",
			Criteria:    models.CriteriaXPEarned,
			Threshold:   10000,
			XPReward:    250,
			Rarity:      models.RarityEpic,
		},
		{
			ID:          "badge_top_ten",
			Name:        "Podium Contender",
			Description: "Reached the top 10 of the leaderboard.",
			Icon:        "medal",
			Criteria:    models.CriteriaLeaderboardRank,
			Threshold:   10,
			XPReward:    200,
			Rarity:      models.RarityEpic,
		},
		{
			ID:          "badge_gold_league",
			Name:        "Golden",
			Description: "Promoted to the Gold league.",
			Icon:        "crown",
			Criteria:    models.CriteriaLeague,
			Threshold:   3,
			XPReward:    150,
			Rarity:      models.RarityRare,
		},
		{
			ID:          "badge_explorer",
			Name:        "Curriculum Explorer",
			Description: "Completed lessons in 5 different categories.",
			Icon:        "compass",
			Criteria:    models.CriteriaCategoriesExplored,
			Threshold:   5,
			XPReward:    120,
			Rarity:      models.RarityRare,
		},
		{
			ID:          "badge_skill_master",
			Name:        "Skill Master",
			Description: "Mastered your first skill track.",
			Icon:        "award",
			Criteria:    models.CriteriaSkillsMastered,
			Threshold:   1,
			XPReward:    180,
			Rarity:      models.RarityEpic,
		},
		{
			ID:          "badge_comeback",
			Name:        "The Comeback",
			Description: "Restored a broken streak.",
			Icon:        "rotate-ccw",
			Criteria:    models.CriteriaStreakRestored,
			Threshold:   1,
			XPReward:    60,
			Rarity:      models.RarityRare,
		},
		{
			ID:          "badge_early_bird",
			Name:        "Early Bird",
			Description: "Completed a lesson before 6 AM.",
			Icon:        "sunrise",
			Criteria:    models.CriteriaEarlyCompletion,
			Threshold:   1,
			XPReward:    40,
			Rarity:      models.RarityCommon,
		},
		{
			ID:          "badge_night_owl",
			Name:        "Night Owl",
			Description: "Completed a lesson after 11 PM.",
			Icon:        "moon",
			Criteria:    models.CriteriaLateCompletion,
			Threshold:   1,
			XPReward:    40,
			Rarity:      models.RarityCommon,
		},
	}

	created := 0
	for _, badge := range badges {
		var existing models.Badge
		err := database.DB.First(&existing, "id = ?", badge.ID).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("   ⚠️ Failed to check badge %s: %v", badge.ID, err)
			continue
		}
		if err := database.DB.Create(&badge).Error; err != nil {
			log.Printf("   ⚠️ Failed to create badge %s: %v", badge.ID, err)
			continue
		}
		created++
	}

	log.Printf("   ✅ Badge catalog ready (%d created, %d total)", created, len(badges))
}
