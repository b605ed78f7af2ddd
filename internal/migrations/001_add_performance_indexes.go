package migrations

import (
	"gorm.io/gorm"
)

// Migration001AddPerformanceIndexes adds composite indexes for hot-path
// queries that the model tags do not cover:
// 1. Challenge progress windows (user_id, completed_at)
// 2. Skill mastery recompute (user_id, best_accuracy)
// 3. Leaderboard base ranking (role, xp_points)
//
// All indexes are idempotent (IF NOT EXISTS) for safe re-runs.
func Migration001AddPerformanceIndexes() Migration {
	return Migration{
		ID:   "001_add_performance_indexes",
		Name: "Add performance indexes for hot-path queries",
		Up: func(db *gorm.DB) error {
			idx1 := `
				CREATE INDEX IF NOT EXISTS idx_lesson_completions_user_time
				ON lesson_completions (user_id, completed_at DESC)
			`
			if err := db.Exec(idx1).Error; err != nil {
				return err
			}

			idx2 := `
				CREATE INDEX IF NOT EXISTS idx_completion_records_user_accuracy
				ON completion_records (user_id, best_accuracy)
			`
			if err := db.Exec(idx2).Error; err != nil {
				return err
			}

			idx3 := `
				CREATE INDEX IF NOT EXISTS idx_users_role_xp
				ON users (role, xp_points DESC)
			`
			return db.Exec(idx3).Error
		},
		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP INDEX IF EXISTS idx_users_role_xp`).Error; err != nil {
				return err
			}
			if err := db.Exec(`DROP INDEX IF EXISTS idx_completion_records_user_accuracy`).Error; err != nil {
				return err
			}
			return db.Exec(`DROP INDEX IF EXISTS idx_lesson_completions_user_time`).Error
		},
	}
}
