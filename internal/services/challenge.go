package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	apperrors "github.com/skillforge-app/skillforge-backend/pkg/errors"
	"gorm.io/gorm"
)

// ChallengeWithProgress is one active slot with live recomputed progress.
type ChallengeWithProgress struct {
	ChallengeDef
	Progress  int  `json:"progress"`
	Total     int  `json:"total"`
	Completed bool `json:"completed"`
	Claimed   bool `json:"claimed"`
}

// ChallengeClaimResult is returned after a successful claim.
type ChallengeClaimResult struct {
	ChallengeID string        `json:"challengeId"`
	XPEarned    int           `json:"xpEarned"`
	TotalXP     int           `json:"totalXP"`
	Level       int           `json:"level"`
	LevelName   string        `json:"levelName"`
	League      models.League `json:"league"`
}

func startOfUTCDay(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// challengeWindow returns the evaluation window start for a definition:
// the current UTC day for daily entries, the trailing 7 days for weekly.
func challengeWindow(def ChallengeDef, now time.Time) time.Time {
	if def.Type == ChallengeWeekly {
		return now.UTC().Add(-7 * 24 * time.Hour)
	}
	return startOfUTCDay(now)
}

// checkProgress recomputes a challenge's progress from the ledger. Dispatch
// on the definition's kind; every evaluator is a pure query over
// (userID, params, window).
func checkProgress(def ChallengeDef, userID string, now time.Time) (progress, total int, err error) {
	since := challengeWindow(def, now)
	total = def.Target

	switch def.Kind {
	case KindLessonsInWindow:
		var n int64
		err = database.DB.Model(&models.LessonCompletion{}).
			Where("user_id = ? AND completed_at >= ?", userID, since).
			Count(&n).Error
		progress = int(n)

	case KindPerfectInWindow:
		var n int64
		err = database.DB.Model(&models.LessonCompletion{}).
			Where("user_id = ? AND completed_at >= ? AND accuracy >= 100", userID, since).
			Count(&n).Error
		progress = int(n)

	case KindXPInWindow:
		var sum *int
		err = database.DB.Model(&models.XPEvent{}).
			Select("SUM(amount)").
			Where("user_id = ? AND created_at >= ?", userID, since).
			Scan(&sum).Error
		if sum != nil {
			progress = *sum
		}

	case KindCategoryInWindow:
		var n int64
		err = database.DB.Model(&models.LessonCompletion{}).
			Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
			Where("lesson_completions.user_id = ? AND lesson_completions.completed_at >= ? AND lessons.category = ?",
				userID, since, def.Category).
			Count(&n).Error
		progress = int(n)

	case KindRetakesInWindow:
		var n int64
		err = database.DB.Model(&models.LessonCompletion{}).
			Where("user_id = ? AND completed_at >= ? AND xp_earned = ?", userID, since, RetakeXP).
			Count(&n).Error
		progress = int(n)

	case KindCategorySpread:
		var n int64
		err = database.DB.Model(&models.LessonCompletion{}).
			Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
			Where("lesson_completions.user_id = ? AND lesson_completions.completed_at >= ?", userID, since).
			Distinct("lessons.category").
			Count(&n).Error
		progress = int(n)

	default:
		err = apperrors.Internal(fmt.Sprintf("unknown challenge kind %q", def.Kind))
	}

	if progress > total {
		progress = total
	}
	return progress, total, err
}

// pickSlots selects 2 daily challenges without replacement and 1 weekly.
func pickSlots() (daily1, daily2, weekly string) {
	dailies := challengesOfType(ChallengeDaily)
	weeklies := challengesOfType(ChallengeWeekly)

	i := rand.Intn(len(dailies))
	j := rand.Intn(len(dailies) - 1)
	if j >= i {
		j++
	}
	return dailies[i].ID, dailies[j].ID, weeklies[rand.Intn(len(weeklies))].ID
}

// ensureRotation lazily rotates a user's challenge slots: slots only change
// when the stored lastReset falls before the start of the current UTC day.
// Mid-day reads and claims never reshuffle.
func ensureRotation(userID string, now time.Time) (*models.ChallengeState, error) {
	today := startOfUTCDay(now)

	var state models.ChallengeState
	err := database.DB.First(&state, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		d1, d2, w := pickSlots()
		state = models.ChallengeState{
			UserID:     userID,
			DailySlot1: d1,
			DailySlot2: d2,
			WeeklySlot: w,
			LastReset:  today,
		}
		if err := database.DB.Create(&state).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Concurrent first read created it; use theirs.
				err = database.DB.First(&state, "user_id = ?", userID).Error
			}
			if err != nil {
				return nil, err
			}
		}
		return &state, nil
	}
	if err != nil {
		return nil, err
	}

	if state.LastReset.Before(today) {
		d1, d2, w := pickSlots()
		state.DailySlot1 = d1
		state.DailySlot2 = d2
		state.WeeklySlot = w
		state.LastReset = today
		if err := database.DB.Save(&state).Error; err != nil {
			return nil, err
		}
	}
	return &state, nil
}

// GetChallenges returns the user's 3 active slots with recomputed progress.
func GetChallenges(userID string, now time.Time) ([]ChallengeWithProgress, error) {
	state, err := ensureRotation(userID, now)
	if err != nil {
		return nil, err
	}

	// Claims are kept forever for badge criteria; only the current window's
	// rows mark a slot as claimed.
	var claims []models.ChallengeClaim
	if err := database.DB.Where("user_id = ? AND window_start >= ?", userID, state.LastReset).
		Find(&claims).Error; err != nil {
		return nil, err
	}
	claimed := make(map[string]bool, len(claims))
	for _, c := range claims {
		claimed[c.ChallengeID] = true
	}

	out := make([]ChallengeWithProgress, 0, 3)
	for _, id := range state.SlotIDs() {
		def, ok := challengeByID(id)
		if !ok {
			// Slot references a retired catalog entry; skip until rotation.
			continue
		}
		progress, total, err := checkProgress(def, userID, now)
		if err != nil {
			return nil, err
		}
		out = append(out, ChallengeWithProgress{
			ChallengeDef: def,
			Progress:     progress,
			Total:        total,
			Completed:    progress >= total,
			Claimed:      claimed[id],
		})
	}
	return out, nil
}

// ClaimChallenge converts a completed active challenge into its XP reward,
// exactly once. The claim row's composite key makes a racing duplicate claim
// a constraint violation rather than a double payout.
func ClaimChallenge(userID, challengeID string, now time.Time) (*ChallengeClaimResult, error) {
	state, err := ensureRotation(userID, now)
	if err != nil {
		return nil, err
	}

	active := false
	for _, id := range state.SlotIDs() {
		if id == challengeID {
			active = true
			break
		}
	}
	if !active {
		return nil, apperrors.NotActive("challenge is not active")
	}

	def, ok := challengeByID(challengeID)
	if !ok {
		return nil, apperrors.NotFound("unknown challenge")
	}

	var existing models.ChallengeClaim
	err = database.DB.Where("user_id = ? AND challenge_id = ? AND window_start >= ?",
		userID, challengeID, state.LastReset).First(&existing).Error
	if err == nil {
		return nil, apperrors.AlreadyClaimed("challenge already claimed")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress, total, err := checkProgress(def, userID, now)
	if err != nil {
		return nil, err
	}
	if progress < total {
		return nil, apperrors.NotCompleted("challenge not completed yet")
	}

	var result ChallengeClaimResult
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		claim := models.ChallengeClaim{
			UserID:      userID,
			ChallengeID: challengeID,
			WindowStart: state.LastReset,
			ClaimedAt:   now,
		}
		if err := tx.Create(&claim).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.AlreadyClaimed("challenge already claimed")
			}
			return err
		}

		totalXP, err := grantXP(tx, userID, def.XPReward, models.XPSourceChallenge,
			fmt.Sprintf("Completed challenge: %s", def.Title), now)
		if err != nil {
			return err
		}

		info := ComputeLevel(totalXP)
		result = ChallengeClaimResult{
			ChallengeID: challengeID,
			XPEarned:    def.XPReward,
			TotalXP:     totalXP,
			Level:       info.Level,
			LevelName:   info.LevelName,
			League:      LeagueOf(totalXP),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	database.CacheInvalidate("leaderboard:*")
	return &result, nil
}
