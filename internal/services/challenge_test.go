package services

import (
	"testing"
	"time"

	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	apperrors "github.com/skillforge-app/skillforge-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// setChallengeSlots pins a user's active slots so claim tests are not at the
// mercy of the random rotation.
func setChallengeSlots(t *testing.T, userID, d1, d2, w string, now time.Time) {
	state := models.ChallengeState{
		UserID:     userID,
		DailySlot1: d1,
		DailySlot2: d2,
		WeeklySlot: w,
		LastReset:  startOfUTCDay(now),
	}
	if err := database.DB.Save(&state).Error; err != nil {
		t.Fatalf("Failed to set challenge slots: %v", err)
	}
}

func TestChallengeCatalog_Invariants(t *testing.T) {
	catalog := ChallengeCatalog()
	seen := make(map[string]bool)
	daily, weekly := 0, 0
	for _, def := range catalog {
		assert.False(t, seen[def.ID], "duplicate catalog id %s", def.ID)
		seen[def.ID] = true
		assert.Greater(t, def.XPReward, 0, def.ID)
		assert.Greater(t, def.Target, 0, def.ID)
		switch def.Type {
		case ChallengeDaily:
			daily++
		case ChallengeWeekly:
			weekly++
		default:
			t.Errorf("challenge %s has unknown type %q", def.ID, def.Type)
		}
	}
	// Slot rotation picks 2 distinct dailies and 1 weekly.
	assert.GreaterOrEqual(t, daily, 2)
	assert.GreaterOrEqual(t, weekly, 1)
}

func TestGetChallenges_SlotShape(t *testing.T) {
	SetupTestDB(t)
	createTestUser(t, "user1", 0)

	challenges, err := GetChallenges("user1", testNow())
	assert.NoError(t, err)
	assert.Len(t, challenges, 3)

	daily, weekly := 0, 0
	for _, c := range challenges {
		switch c.Type {
		case ChallengeDaily:
			daily++
		case ChallengeWeekly:
			weekly++
		}
		assert.False(t, c.Completed)
		assert.False(t, c.Claimed)
	}
	assert.Equal(t, 2, daily)
	assert.Equal(t, 1, weekly)
	assert.NotEqual(t, challenges[0].ID, challenges[1].ID)
}

func TestGetChallenges_StableWithinDay(t *testing.T) {
	SetupTestDB(t)
	createTestUser(t, "user1", 0)

	first, err := GetChallenges("user1", testNow())
	assert.NoError(t, err)

	// A later read the same day sees the same slots.
	second, err := GetChallenges("user1", testNow().Add(9*time.Hour))
	assert.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestGetChallenges_MidnightRotation(t *testing.T) {
	SetupTestDB(t)
	createTestUser(t, "user1", 0)

	yesterday := testNow().Add(-24 * time.Hour)
	setChallengeSlots(t, "user1", "daily_three_lessons", "daily_perfect_test", "weekly_ten_lessons", yesterday)
	database.DB.Create(&models.ChallengeClaim{
		UserID:      "user1",
		ChallengeID: "daily_perfect_test",
		WindowStart: startOfUTCDay(yesterday),
		ClaimedAt:   yesterday,
	})

	challenges, err := GetChallenges("user1", testNow())
	assert.NoError(t, err)

	// Rotation moved the reset marker to today; nothing counts as claimed in
	// the new window.
	var state models.ChallengeState
	database.DB.First(&state, "user_id = ?", "user1")
	assert.Equal(t, startOfUTCDay(testNow()), state.LastReset.UTC())
	for _, c := range challenges {
		assert.False(t, c.Claimed, c.ID)
	}

	// Yesterday's claim stays in the ledger for badge criteria.
	var claims int64
	database.DB.Model(&models.ChallengeClaim{}).Where("user_id = ?", "user1").Count(&claims)
	assert.Equal(t, int64(1), claims)
}

func TestClaimChallenge_FullFlow(t *testing.T) {
	SetupTestDB(t)
	createTestUser(t, "user1", 0)
	createTestLesson(t, "lesson1", models.DifficultyBeginner, "Programming", "Go Basics")
	createTestLesson(t, "lesson2", models.DifficultyBeginner, "Programming", "Go Basics")
	createTestLesson(t, "lesson3", models.DifficultyBeginner, "Databases", "SQL")

	now := testNow()
	setChallengeSlots(t, "user1", "daily_three_lessons", "daily_perfect_test", "weekly_ten_lessons", now)

	// Not completed yet: no payout.
	_, err := ClaimChallenge("user1", "daily_three_lessons", now)
	assert.Equal(t, apperrors.KindNotCompleted, apperrors.KindOf(err))

	// A challenge outside the active slots cannot be claimed at all.
	_, err = ClaimChallenge("user1", "daily_xp_100", now)
	assert.Equal(t, apperrors.KindNotActive, apperrors.KindOf(err))

	for i, lessonID := range []string{"lesson1", "lesson2", "lesson3"} {
		_, err := CompleteLesson("user1", lessonID, 9, 10, now.Add(time.Duration(i)*time.Minute))
		assert.NoError(t, err)
	}

	result, err := ClaimChallenge("user1", "daily_three_lessons", now.Add(time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, 40, result.XPEarned)
	assert.Equal(t, 3*50+40, result.TotalXP)

	var event models.XPEvent
	err = database.DB.Where("user_id = ? AND source = ?", "user1", models.XPSourceChallenge).First(&event).Error
	assert.NoError(t, err)
	assert.Equal(t, 40, event.Amount)

	// Second claim of the same challenge is rejected.
	_, err = ClaimChallenge("user1", "daily_three_lessons", now.Add(2*time.Hour))
	assert.Equal(t, apperrors.KindAlreadyClaimed, apperrors.KindOf(err))

	var user models.User
	database.DB.First(&user, "id = ?", "user1")
	assert.Equal(t, 190, user.XPPoints)
}

func TestClaimChallenge_PerfectTest(t *testing.T) {
	SetupTestDB(t)
	createTestUser(t, "user1", 0)
	createTestLesson(t, "lesson1", models.DifficultyBeginner, "Programming", "Go Basics")

	now := testNow()
	setChallengeSlots(t, "user1", "daily_three_lessons", "daily_perfect_test", "weekly_ten_lessons", now)

	// 90% is not a perfect test.
	_, err := CompleteLesson("user1", "lesson1", 9, 10, now)
	assert.NoError(t, err)
	_, err = ClaimChallenge("user1", "daily_perfect_test", now)
	assert.Equal(t, apperrors.KindNotCompleted, apperrors.KindOf(err))

	_, err = CompleteLesson("user1", "lesson1", 10, 10, now.Add(time.Minute))
	assert.NoError(t, err)

	result, err := ClaimChallenge("user1", "daily_perfect_test", now.Add(2*time.Minute))
	assert.NoError(t, err)
	assert.Equal(t, 50, result.XPEarned)
}

func TestChallengeProgress_WindowBoundaries(t *testing.T) {
	SetupTestDB(t)
	createTestUser(t, "user1", 0)
	createTestLesson(t, "lesson1", models.DifficultyBeginner, "Programming", "Go Basics")
	createTestLesson(t, "lesson2", models.DifficultyBeginner, "Databases", "SQL")

	now := testNow()
	setChallengeSlots(t, "user1", "daily_three_lessons", "daily_perfect_test", "weekly_ten_lessons", now)

	// One completion 8 days ago falls outside the weekly window; yesterday's
	// falls outside the daily window but inside the weekly one.
	_, err := CompleteLesson("user1", "lesson1", 8, 10, now.Add(-8*24*time.Hour))
	assert.NoError(t, err)
	_, err = CompleteLesson("user1", "lesson2", 8, 10, now.Add(-24*time.Hour))
	assert.NoError(t, err)

	// Slots were pinned after those completions, so no rotation fires.
	challenges, err := GetChallenges("user1", now)
	assert.NoError(t, err)

	byID := make(map[string]ChallengeWithProgress)
	for _, c := range challenges {
		byID[c.ID] = c
	}
	assert.Equal(t, 0, byID["daily_three_lessons"].Progress)
	assert.Equal(t, 1, byID["weekly_ten_lessons"].Progress)
	assert.Equal(t, 10, byID["weekly_ten_lessons"].Total)
}

func TestChallengeProgress_CappedAtTarget(t *testing.T) {
	SetupTestDB(t)
	createTestUser(t, "user1", 0)
	createTestLesson(t, "lesson1", models.DifficultyBeginner, "Programming", "Go Basics")

	now := testNow()
	setChallengeSlots(t, "user1", "daily_three_lessons", "daily_perfect_test", "weekly_ten_lessons", now)

	// 5 perfect completions; perfect-test progress still reads 1 of 1.
	for i := 0; i < 5; i++ {
		_, err := CompleteLesson("user1", "lesson1", 10, 10, now.Add(time.Duration(i)*time.Minute))
		assert.NoError(t, err)
	}

	challenges, err := GetChallenges("user1", now.Add(time.Hour))
	assert.NoError(t, err)
	for _, c := range challenges {
		if c.ID == "daily_perfect_test" {
			assert.Equal(t, 1, c.Progress)
			assert.Equal(t, 1, c.Total)
			assert.True(t, c.Completed)
		}
	}
}

func TestClaimChallenge_HistorySurvivesRotation(t *testing.T) {
	SetupTestDB(t)
	createTestUser(t, "user1", 0)
	createTestLesson(t, "lesson1", models.DifficultyBeginner, "Programming", "Go Basics")

	day1 := testNow()
	setChallengeSlots(t, "user1", "daily_three_lessons", "daily_perfect_test", "weekly_ten_lessons", day1)
	_, err := CompleteLesson("user1", "lesson1", 10, 10, day1)
	assert.NoError(t, err)
	_, err = ClaimChallenge("user1", "daily_perfect_test", day1)
	assert.NoError(t, err)

	// The next day the same challenge lands in a slot again and is claimable
	// again: yesterday's claim belongs to yesterday's window.
	day2 := day1.Add(24 * time.Hour)
	setChallengeSlots(t, "user1", "daily_three_lessons", "daily_perfect_test", "weekly_ten_lessons", day2)
	_, err = CompleteLesson("user1", "lesson1", 10, 10, day2)
	assert.NoError(t, err)

	result, err := ClaimChallenge("user1", "daily_perfect_test", day2)
	assert.NoError(t, err)
	assert.Equal(t, 50, result.XPEarned)

	// Within day 2 the claim is still exactly-once.
	_, err = ClaimChallenge("user1", "daily_perfect_test", day2.Add(time.Hour))
	assert.Equal(t, apperrors.KindAlreadyClaimed, apperrors.KindOf(err))

	// Both claims survive as lifetime history.
	var claims int64
	database.DB.Model(&models.ChallengeClaim{}).Where("user_id = ?", "user1").Count(&claims)
	assert.Equal(t, int64(2), claims)
}

func TestClaimChallenge_RacingDuplicateClaim(t *testing.T) {
	SetupTestDB(t)
	createTestUser(t, "user1", 0)
	createTestLesson(t, "lesson1", models.DifficultyBeginner, "Programming", "Go Basics")

	now := testNow()
	setChallengeSlots(t, "user1", "daily_three_lessons", "daily_perfect_test", "weekly_ten_lessons", now)
	_, err := CompleteLesson("user1", "lesson1", 10, 10, now)
	assert.NoError(t, err)

	// Another request lands the same claim between the existence check and
	// the insert; the composite key absorbs it without a second payout.
	interceptCreate(t, "challenge_claims", func(tx *gorm.DB) error {
		return tx.Create(&models.ChallengeClaim{
			UserID:      "user1",
			ChallengeID: "daily_perfect_test",
			WindowStart: startOfUTCDay(now),
			ClaimedAt:   now,
		}).Error
	})

	_, err = ClaimChallenge("user1", "daily_perfect_test", now)
	assert.Equal(t, apperrors.KindAlreadyClaimed, apperrors.KindOf(err))

	// Only the lesson XP stands.
	var user models.User
	database.DB.First(&user, "id = ?", "user1")
	assert.Equal(t, 50, user.XPPoints)

	var events int64
	database.DB.Model(&models.XPEvent{}).
		Where("user_id = ? AND source = ?", "user1", models.XPSourceChallenge).Count(&events)
	assert.Equal(t, int64(0), events)
}
