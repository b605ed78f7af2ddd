package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	apperrors "github.com/skillforge-app/skillforge-backend/pkg/errors"
	"github.com/skillforge-app/skillforge-backend/pkg/utils"
	"gorm.io/gorm"
)

// CompletionResult is the payload returned after a lesson completion has been
// recorded and all derived progression state recomputed.
type CompletionResult struct {
	XPEarned          int           `json:"xpEarned"`
	TotalXP           int           `json:"totalXP"`
	Level             int           `json:"level"`
	LevelName         string        `json:"levelName"`
	XPIntoLevel       int           `json:"xpIntoLevel"`
	XPForNextLevel    int           `json:"xpForNextLevel"`
	XPProgress        int           `json:"xpProgress"`
	League            models.League `json:"league"`
	Accuracy          float64       `json:"accuracy"`
	IsFirstCompletion bool          `json:"isFirstCompletion"`
	LeveledUp         bool          `json:"leveledUp"`
}

// CompleteLesson records a completion attempt for (userID, lessonID) and runs
// the full progression sequence: ledger update, reward, XP/level/league
// mutation. The whole sequence runs in one transaction so the caller sees the
// ledger and the user aggregate move together or not at all.
func CompleteLesson(userID, lessonID string, correctAnswers, totalQuestions int, now time.Time) (*CompletionResult, error) {
	if totalQuestions <= 0 {
		return nil, apperrors.InvalidInput("totalQuestions must be positive")
	}
	if correctAnswers < 0 || correctAnswers > totalQuestions {
		return nil, apperrors.InvalidInput("correctAnswers must be between 0 and totalQuestions")
	}

	var lesson models.Lesson
	if err := database.DB.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("lesson not found")
		}
		return nil, err
	}

	accuracy := AccuracyOf(correctAnswers, totalQuestions)

	var result CompletionResult
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var record models.CompletionRecord
		err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&record).Error
		isFirst := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !isFirst {
			return err
		}

		var xpEarned int
		if isFirst {
			xpEarned = FirstCompletionXP(lesson.Difficulty)
			record = models.CompletionRecord{
				ID:                  utils.GenerateID(),
				UserID:              userID,
				LessonID:            lessonID,
				CompletionCount:     1,
				FirstCompletionDate: now,
				LastCompletionDate:  now,
				BestCorrectAnswers:  correctAnswers,
				BestTotalQuestions:  totalQuestions,
				BestAccuracy:        accuracy,
				TotalXPEarned:       xpEarned,
			}
			if err := tx.Create(&record).Error; err != nil {
				// Lost the race against a concurrent first completion of the
				// same lesson; the unique index keeps the count honest.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apperrors.Conflict("concurrent completion, retry")
				}
				return err
			}
		} else {
			xpEarned = RetakeXP
			res := tx.Model(&models.CompletionRecord{}).Where("id = ?", record.ID).
				Updates(map[string]interface{}{
					"completion_count":     gorm.Expr("completion_count + 1"),
					"total_xp_earned":      gorm.Expr("total_xp_earned + ?", xpEarned),
					"last_completion_date": now,
				})
			if res.Error != nil {
				return res.Error
			}
			// Best score only moves on strictly higher accuracy.
			if err := tx.Model(&models.CompletionRecord{}).
				Where("id = ? AND best_accuracy < ?", record.ID, accuracy).
				Updates(map[string]interface{}{
					"best_correct_answers": correctAnswers,
					"best_total_questions": totalQuestions,
					"best_accuracy":        accuracy,
				}).Error; err != nil {
				return err
			}
		}

		attempt := models.LessonCompletion{
			ID:             utils.GenerateID(),
			UserID:         userID,
			LessonID:       lessonID,
			CompletedAt:    now,
			CorrectAnswers: correctAnswers,
			TotalQuestions: totalQuestions,
			Accuracy:       accuracy,
			XPEarned:       xpEarned,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		total, err := grantXP(tx, userID, xpEarned, models.XPSourceLesson,
			fmt.Sprintf("Completed lesson: %s", lesson.Title), now)
		if err != nil {
			return err
		}

		if isFirst {
			if err := tx.Model(&models.User{}).Where("id = ?", userID).
				UpdateColumn("challenges_completed", gorm.Expr("challenges_completed + 1")).Error; err != nil {
				return err
			}
		}

		info := ComputeLevel(total)
		result = CompletionResult{
			XPEarned:          xpEarned,
			TotalXP:           total,
			Level:             info.Level,
			LevelName:         info.LevelName,
			XPIntoLevel:       info.XPIntoLevel,
			XPForNextLevel:    info.XPForNextLevel,
			XPProgress:        info.XPProgress,
			League:            LeagueOf(total),
			Accuracy:          accuracy,
			IsFirstCompletion: isFirst,
			LeveledUp:         info.Level > LevelForXP(total-xpEarned),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	database.CacheInvalidate("leaderboard:*")
	return &result, nil
}

// GetCompletionRecord returns the ledger head for a (user, lesson) pair.
func GetCompletionRecord(userID, lessonID string) (*models.CompletionRecord, error) {
	var record models.CompletionRecord
	if err := database.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no completions for this lesson")
		}
		return nil, err
	}
	return &record, nil
}
