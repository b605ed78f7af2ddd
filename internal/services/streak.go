package services

import (
	"errors"
	"time"

	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	apperrors "github.com/skillforge-app/skillforge-backend/pkg/errors"
	"gorm.io/gorm"
)

// StreakStatus is the caller-facing snapshot of the daily streak.
type StreakStatus struct {
	CurrentStreak  int  `json:"currentStreak"`
	LongestStreak  int  `json:"longestStreak"`
	ActiveToday    bool `json:"activeToday"`
	StreakRestored bool `json:"streakRestored"`
}

// maxStreakLookback bounds the recompute scan; a streak older than this is
// counted as exactly this many days.
const maxStreakLookback = 366

// computeStreak counts consecutive active days ending at now's UTC day. The
// streak is alive if the most recent active day is today or yesterday.
func computeStreak(userID string, now time.Time) (int, error) {
	var rows []models.DailyActivity
	err := database.DB.Select("day").
		Where("user_id = ?", userID).
		Order("day desc").
		Limit(maxStreakLookback).
		Find(&rows).Error
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	today := startOfUTCDay(now)
	latest := startOfUTCDay(rows[0].Day)
	if latest.Before(today.Add(-24 * time.Hour)) {
		return 0, nil
	}

	streak := 1
	prev := latest
	for _, r := range rows[1:] {
		day := startOfUTCDay(r.Day)
		if !day.Equal(prev.Add(-24 * time.Hour)) {
			break
		}
		streak++
		prev = day
	}
	return streak, nil
}

// UpdateStreak records today as an active day and refreshes the user's streak
// counters. Recording the same day twice is a no-op, so calling this on every
// lesson completion is safe.
func UpdateStreak(userID string, now time.Time) (*StreakStatus, error) {
	today := startOfUTCDay(now)

	activity := models.DailyActivity{UserID: userID, Day: today}
	if err := database.DB.Create(&activity).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	return refreshStreak(userID, now)
}

// RestoreStreak repairs a streak broken by exactly one missed day: a synthetic
// active day is inserted for yesterday and the streak recomputed. The restored
// flag stays set so the matching badge criteria can see it.
func RestoreStreak(userID string, now time.Time) (*StreakStatus, error) {
	today := startOfUTCDay(now)
	yesterday := today.Add(-24 * time.Hour)
	dayBefore := today.Add(-48 * time.Hour)

	var n int64
	if err := database.DB.Model(&models.DailyActivity{}).
		Where("user_id = ? AND day = ?", userID, yesterday).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, apperrors.InvalidInput("streak is not broken")
	}

	if err := database.DB.Model(&models.DailyActivity{}).
		Where("user_id = ? AND day = ?", userID, dayBefore).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperrors.InvalidInput("only a single missed day can be restored")
	}

	activity := models.DailyActivity{UserID: userID, Day: yesterday}
	if err := database.DB.Create(&activity).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("streak_restored", true).Error; err != nil {
		return nil, err
	}

	return refreshStreak(userID, now)
}

// refreshStreak recomputes the streak and writes the counters back, ratcheting
// the longest-streak high-water mark.
func refreshStreak(userID string, now time.Time) (*StreakStatus, error) {
	current, err := computeStreak(userID, now)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}

	longest := user.LongestStreak
	if current > longest {
		longest = current
	}
	if current != user.CurrentStreak || longest != user.LongestStreak {
		if err := database.DB.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"current_streak": current,
				"longest_streak": longest,
			}).Error; err != nil {
			return nil, err
		}
	}

	var activeToday int64
	if err := database.DB.Model(&models.DailyActivity{}).
		Where("user_id = ? AND day = ?", userID, startOfUTCDay(now)).
		Count(&activeToday).Error; err != nil {
		return nil, err
	}

	return &StreakStatus{
		CurrentStreak:  current,
		LongestStreak:  longest,
		ActiveToday:    activeToday > 0,
		StreakRestored: user.StreakRestored,
	}, nil
}

// GetStreak returns the current streak snapshot without recording activity.
func GetStreak(userID string, now time.Time) (*StreakStatus, error) {
	return refreshStreak(userID, now)
}
