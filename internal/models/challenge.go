package models

import "time"

// ChallengeState holds a user's three active challenge slots (2 daily + 1
// weekly). Slots only change when LastReset falls before the current UTC day.
type ChallengeState struct {
	UserID    string    `gorm:"primaryKey;type:text" json:"userId"`
	UpdatedAt time.Time `json:"updatedAt"`

	DailySlot1 string `gorm:"type:text" json:"dailySlot1"`
	DailySlot2 string `gorm:"type:text" json:"dailySlot2"`
	WeeklySlot string `gorm:"type:text" json:"weeklySlot"`

	LastReset time.Time `json:"lastReset"`
}

func (ChallengeState) TableName() string {
	return "challenge_states"
}

// SlotIDs returns the active slot ids in catalog order.
func (s ChallengeState) SlotIDs() []string {
	return []string{s.DailySlot1, s.DailySlot2, s.WeeklySlot}
}

// ChallengeClaim is the lifetime claim ledger: one row per claim, keyed by
// the rotation window it was claimed in. The composite primary key makes a
// duplicate claim within a window a constraint violation, so a reward can
// never be paid twice, while a challenge re-selected in a later window gets
// a fresh row. Badge criteria count these rows across all windows.
type ChallengeClaim struct {
	UserID      string    `gorm:"primaryKey;type:text" json:"userId"`
	ChallengeID string    `gorm:"primaryKey;type:text" json:"challengeId"`
	WindowStart time.Time `gorm:"primaryKey" json:"windowStart"`
	ClaimedAt   time.Time `json:"claimedAt"`
}

func (ChallengeClaim) TableName() string {
	return "challenge_claims"
}
