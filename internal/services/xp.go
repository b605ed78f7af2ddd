package services

import (
	"time"

	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	apperrors "github.com/skillforge-app/skillforge-backend/pkg/errors"
	"github.com/skillforge-app/skillforge-backend/pkg/utils"
	"gorm.io/gorm"
)

// grantXP is the single XP-mutation path shared by lesson completion,
// challenge claims and badge awards. The increment is issued as a SQL
// expression so concurrent grants compose; level and league are recomputed
// from the post-increment value, never from a stale snapshot. Appends the
// audit event and returns the new total.
func grantXP(tx *gorm.DB, userID string, amount int, source models.XPSource, description string, now time.Time) (int, error) {
	res := tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("xp_points", gorm.Expr("xp_points + ?", amount))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, apperrors.NotFound("user not found")
	}

	var total int
	if err := tx.Model(&models.User{}).Select("xp_points").
		Where("id = ?", userID).Scan(&total).Error; err != nil {
		return 0, err
	}

	info := ComputeLevel(total)
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"level":      info.Level,
		"level_name": info.LevelName,
		"league":     LeagueOf(total),
	}).Error; err != nil {
		return 0, err
	}

	event := models.XPEvent{
		ID:          utils.GenerateID(),
		UserID:      userID,
		Amount:      amount,
		Source:      source,
		Description: description,
		CreatedAt:   now,
	}
	if err := tx.Create(&event).Error; err != nil {
		return 0, err
	}

	return total, nil
}

// windowedXP sums audit-log XP per user since the given cutoff.
func windowedXP(userIDs []string, since time.Time) (map[string]int, error) {
	if len(userIDs) == 0 {
		return map[string]int{}, nil
	}
	type row struct {
		UserID string
		Total  int
	}
	var rows []row
	err := database.DB.Model(&models.XPEvent{}).
		Select("user_id, SUM(amount) as total").
		Where("user_id IN ? AND created_at >= ?", userIDs, since).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.UserID] = r.Total
	}
	return out, nil
}
