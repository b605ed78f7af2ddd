package models

import "time"

type XPSource string

const (
	XPSourceLesson    XPSource = "lesson"
	XPSourceChallenge XPSource = "challenge"
	XPSourceBadge     XPSource = "badge"
)

// XPEvent is the append-only XP audit log. Rows are never mutated or deleted;
// windowed leaderboards and xpGain are computed by summing over CreatedAt.
type XPEvent struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	UserID      string    `gorm:"type:text;not null;index:idx_xp_user_time" json:"userId"`
	Amount      int       `json:"amount"`
	Source      XPSource  `gorm:"type:text" json:"source"`
	Description string    `json:"description"`
	CreatedAt   time.Time `gorm:"index:idx_xp_user_time" json:"createdAt"`
}

func (XPEvent) TableName() string {
	return "xp_events"
}
