package models

import "time"

// CompletionRecord is the per (user, lesson) ledger head: one row per pair,
// enforced by the composite unique index. Counters are only ever moved by
// atomic SQL expressions, never read-modify-write in Go.
type CompletionRecord struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	UserID    string    `gorm:"type:text;not null;uniqueIndex:idx_user_lesson" json:"userId"`
	LessonID  string    `gorm:"type:text;not null;uniqueIndex:idx_user_lesson" json:"lessonId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CompletionCount     int       `gorm:"default:0" json:"completionCount"`
	FirstCompletionDate time.Time `json:"firstCompletionDate"`
	LastCompletionDate  time.Time `json:"lastCompletionDate"`

	BestCorrectAnswers int     `gorm:"default:0" json:"bestCorrectAnswers"`
	BestTotalQuestions int     `gorm:"default:0" json:"bestTotalQuestions"`
	BestAccuracy       float64 `gorm:"default:0" json:"bestAccuracy"`

	TotalXPEarned int `gorm:"default:0" json:"totalXPEarned"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Lesson Lesson `gorm:"foreignKey:LessonID" json:"-"`
}

func (CompletionRecord) TableName() string {
	return "completion_records"
}

// LessonCompletion is one attempt in the append-only completions history.
type LessonCompletion struct {
	ID       string `gorm:"primaryKey;type:text" json:"id"`
	UserID   string `gorm:"type:text;not null;index" json:"userId"`
	LessonID string `gorm:"type:text;not null;index" json:"lessonId"`

	CompletedAt    time.Time `gorm:"index" json:"completedAt"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	Accuracy       float64   `json:"accuracy"`
	XPEarned       int       `json:"xpEarned"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
