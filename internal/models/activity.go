package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyActivity marks one UTC day on which a user completed at least one
// lesson. The unique (user, day) index makes recording a day idempotent;
// streaks are always recomputed from these rows.
type DailyActivity struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	UserID    string    `gorm:"type:text;not null;uniqueIndex:idx_user_day" json:"userId"`
	Day       time.Time `gorm:"not null;uniqueIndex:idx_user_day" json:"day"`
	CreatedAt time.Time `json:"createdAt"`
}

func (DailyActivity) TableName() string {
	return "daily_activities"
}

func (da *DailyActivity) BeforeCreate(tx *gorm.DB) (err error) {
	if da.ID == "" {
		da.ID = uuid.New().String()
	}
	return
}
