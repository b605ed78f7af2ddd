package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	apperrors "github.com/skillforge-app/skillforge-backend/pkg/errors"
	"gorm.io/gorm"
)

// BadgeWithProgress pairs a catalog badge with the caller's live progress.
type BadgeWithProgress struct {
	Badge    models.Badge `json:"badge"`
	Progress int          `json:"progress"`
	Earned   bool         `json:"earned"`
	EarnedAt *time.Time   `json:"earnedAt,omitempty"`
	Claimed  bool         `json:"claimed"`
}

// badgeStats is the aggregate snapshot badge criteria are evaluated against.
type badgeStats struct {
	counts map[models.BadgeCriteria]int
	// Best (lowest) leaderboard rank ever observed; 0 means never ranked.
	bestRank int
}

func collectBadgeStats(user *models.User) (*badgeStats, error) {
	counts := make(map[models.BadgeCriteria]int)

	var lessonsCompleted int64
	if err := database.DB.Model(&models.CompletionRecord{}).
		Where("user_id = ?", user.ID).Count(&lessonsCompleted).Error; err != nil {
		return nil, err
	}
	counts[models.CriteriaLessonsCompleted] = int(lessonsCompleted)

	var perfectTests int64
	if err := database.DB.Model(&models.LessonCompletion{}).
		Where("user_id = ? AND accuracy >= 100", user.ID).Count(&perfectTests).Error; err != nil {
		return nil, err
	}
	counts[models.CriteriaPerfectTests] = int(perfectTests)

	var claims int64
	if err := database.DB.Model(&models.ChallengeClaim{}).
		Where("user_id = ?", user.ID).Count(&claims).Error; err != nil {
		return nil, err
	}
	counts[models.CriteriaChallengesCompleted] = int(claims)

	var categories int64
	if err := database.DB.Model(&models.CompletionRecord{}).
		Joins("JOIN lessons ON lessons.id = completion_records.lesson_id").
		Where("completion_records.user_id = ?", user.ID).
		Distinct("lessons.category").Count(&categories).Error; err != nil {
		return nil, err
	}
	counts[models.CriteriaCategoriesExplored] = int(categories)

	// Per-day maximum and completion-hour stats are bucketed in Go; one
	// user's ledger is small enough that a scan is fine.
	var attempts []models.LessonCompletion
	if err := database.DB.Select("completed_at").
		Where("user_id = ?", user.ID).Find(&attempts).Error; err != nil {
		return nil, err
	}
	perDay := make(map[string]int)
	for _, a := range attempts {
		utc := a.CompletedAt.UTC()
		perDay[utc.Format("2006-01-02")]++
		if utc.Hour() < 6 {
			counts[models.CriteriaEarlyCompletion]++
		}
		if utc.Hour() >= 23 {
			counts[models.CriteriaLateCompletion]++
		}
	}
	for _, n := range perDay {
		if n > counts[models.CriteriaLessonsPerDay] {
			counts[models.CriteriaLessonsPerDay] = n
		}
	}

	counts[models.CriteriaStreak] = user.CurrentStreak
	counts[models.CriteriaXPEarned] = user.XPPoints
	counts[models.CriteriaLeague] = LeagueRank(user.League)
	counts[models.CriteriaSkillsMastered] = user.SkillsMastered
	if user.StreakRestored {
		counts[models.CriteriaStreakRestored] = 1
	}

	return &badgeStats{counts: counts, bestRank: user.HighestLeaderboardRank}, nil
}

// meets reports whether a badge's criteria is satisfied, and the stat value
// shown as progress. Leaderboard rank is the one inverted criteria: lower is
// better, and rank 0 means never ranked.
func (s *badgeStats) meets(badge models.Badge) (progress int, ok bool) {
	if badge.Criteria == models.CriteriaLeaderboardRank {
		if s.bestRank == 0 {
			return 0, false
		}
		return s.bestRank, s.bestRank <= badge.Threshold
	}
	progress = s.counts[badge.Criteria]
	return progress, progress >= badge.Threshold
}

// recomputeSkillsMastered refreshes the user's mastered-skill counter: a
// skill counts as mastered once every lesson carrying it has a completion
// with best accuracy of at least 90.
func recomputeSkillsMastered(userID string) (int, error) {
	type row struct {
		SkillName string
		Total     int
		Mastered  int
	}
	var rows []row
	err := database.DB.Model(&models.Lesson{}).
		Select(`lessons.skill_name as skill_name,
			COUNT(*) as total,
			SUM(CASE WHEN completion_records.best_accuracy >= 90 THEN 1 ELSE 0 END) as mastered`).
		Joins("LEFT JOIN completion_records ON completion_records.lesson_id = lessons.id AND completion_records.user_id = ?", userID).
		Group("lessons.skill_name").
		Scan(&rows).Error
	if err != nil {
		return 0, err
	}
	mastered := 0
	for _, r := range rows {
		if r.Total > 0 && r.Mastered == r.Total {
			mastered++
		}
	}
	err = database.DB.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("skills_mastered", mastered).Error
	return mastered, err
}

// CheckAndAwardBadges evaluates every not-yet-earned catalog badge against the
// user's current aggregates and awards the ones now satisfied, granting each
// badge's XP through the shared mutation path. Safe to call repeatedly: an
// already-earned badge is never re-evaluated or re-paid.
func CheckAndAwardBadges(userID string, now time.Time) ([]models.Badge, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}

	mastered, err := recomputeSkillsMastered(userID)
	if err != nil {
		return nil, err
	}
	user.SkillsMastered = mastered

	var existing []string
	if err := database.DB.Model(&models.UserBadge{}).
		Where("user_id = ?", userID).Pluck("badge_id", &existing).Error; err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(existing))
	for _, id := range existing {
		owned[id] = true
	}

	stats, err := collectBadgeStats(&user)
	if err != nil {
		return nil, err
	}

	// Stable catalog order so repeated calls award in a deterministic order.
	var catalog []models.Badge
	if err := database.DB.Order("id asc").Find(&catalog).Error; err != nil {
		return nil, err
	}

	var newBadges []models.Badge
	for _, badge := range catalog {
		if owned[badge.ID] {
			continue
		}
		if _, ok := stats.meets(badge); !ok {
			continue
		}

		badge := badge
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			userBadge := models.UserBadge{
				UserID:   userID,
				BadgeID:  badge.ID,
				EarnedAt: now,
				Claimed:  false,
			}
			if err := tx.Create(&userBadge).Error; err != nil {
				return err
			}
			if badge.XPReward > 0 {
				if _, err := grantXP(tx, userID, badge.XPReward, models.XPSourceBadge,
					fmt.Sprintf("Earned badge: %s", badge.Name), now); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			// A concurrent call got there first; the composite key already
			// paid this badge exactly once.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return nil, err
		}
		newBadges = append(newBadges, badge)
	}

	if len(newBadges) > 0 {
		database.CacheInvalidate("leaderboard:*")
	}
	return newBadges, nil
}

// ClaimBadge acknowledges an earned badge. Claiming grants no XP; the reward
// was paid when the badge was earned.
func ClaimBadge(userID, badgeID string) error {
	res := database.DB.Model(&models.UserBadge{}).
		Where("user_id = ? AND badge_id = ? AND claimed = ?", userID, badgeID, false).
		Update("claimed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("badge not earned or already claimed")
	}
	return nil
}

// GetBadges returns the full catalog with the user's progress on each badge.
func GetBadges(userID string) ([]BadgeWithProgress, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}

	stats, err := collectBadgeStats(&user)
	if err != nil {
		return nil, err
	}

	var earned []models.UserBadge
	if err := database.DB.Where("user_id = ?", userID).Find(&earned).Error; err != nil {
		return nil, err
	}
	earnedByID := make(map[string]models.UserBadge, len(earned))
	for _, ub := range earned {
		earnedByID[ub.BadgeID] = ub
	}

	var catalog []models.Badge
	if err := database.DB.Order("id asc").Find(&catalog).Error; err != nil {
		return nil, err
	}

	out := make([]BadgeWithProgress, 0, len(catalog))
	for _, badge := range catalog {
		progress, _ := stats.meets(badge)
		entry := BadgeWithProgress{Badge: badge, Progress: progress}
		if ub, ok := earnedByID[badge.ID]; ok {
			earnedAt := ub.EarnedAt
			entry.Earned = true
			entry.EarnedAt = &earnedAt
			entry.Claimed = ub.Claimed
		}
		out = append(out, entry)
	}
	return out, nil
}
