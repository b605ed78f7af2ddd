package services

import (
	"testing"

	"github.com/skillforge-app/skillforge-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFirstCompletionXP(t *testing.T) {
	assert.Equal(t, 50, FirstCompletionXP(models.DifficultyBeginner))
	assert.Equal(t, 75, FirstCompletionXP(models.DifficultyIntermediate))
	assert.Equal(t, 100, FirstCompletionXP(models.DifficultyAdvanced))
	// Unknown difficulty falls back to the beginner amount.
	assert.Equal(t, 50, FirstCompletionXP(models.Difficulty("NIGHTMARE")))
}

func TestRetakeXP_BelowFirstCompletion(t *testing.T) {
	for _, d := range []models.Difficulty{
		models.DifficultyBeginner,
		models.DifficultyIntermediate,
		models.DifficultyAdvanced,
	} {
		assert.Less(t, RetakeXP, FirstCompletionXP(d))
	}
}

func TestAccuracyOf(t *testing.T) {
	assert.Equal(t, 100.0, AccuracyOf(10, 10))
	assert.Equal(t, 0.0, AccuracyOf(0, 10))
	assert.Equal(t, 77.78, AccuracyOf(7, 9))
	assert.Equal(t, 33.33, AccuracyOf(1, 3))
}
