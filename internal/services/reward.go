package services

import (
	"math"

	"github.com/skillforge-app/skillforge-backend/internal/models"
)

// RetakeXP is the flat reward for re-completing a lesson, deliberately far
// below any first-completion amount so grinding retakes never beats learning
// new material.
const RetakeXP = 10

// FirstCompletionXP returns the reward for finishing a lesson for the first
// time, tiered by lesson difficulty.
func FirstCompletionXP(difficulty models.Difficulty) int {
	switch difficulty {
	case models.DifficultyAdvanced:
		return 100
	case models.DifficultyIntermediate:
		return 75
	default:
		return 50
	}
}

// AccuracyOf converts a raw score to a percentage rounded to two decimals.
// Callers must validate totalQuestions > 0 first.
func AccuracyOf(correctAnswers, totalQuestions int) float64 {
	accuracy := 100 * float64(correctAnswers) / float64(totalQuestions)
	return math.Round(accuracy*100) / 100
}
