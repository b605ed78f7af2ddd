package models

import "time"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
)

// Lesson is read-only reference data supplied by the lesson catalog.
type Lesson struct {
	ID         string     `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt  time.Time  `json:"createdAt"`
	Title      string     `json:"title"`
	Difficulty Difficulty `gorm:"type:text;default:'BEGINNER'" json:"difficulty"`
	Category   string     `gorm:"index" json:"category"`
	SkillName  string     `gorm:"index" json:"skillName"`
}

func (Lesson) TableName() string {
	return "lessons"
}
