package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "USER"
	RoleRecruiter Role = "RECRUITER"
	RoleAdmin     Role = "ADMIN"
)

// League is the coarse XP tier used for leaderboard cohorts. Always derived
// from XPPoints; see services.LeagueOf.
type League string

const (
	LeagueBronze   League = "bronze"
	LeagueSilver   League = "silver"
	LeagueGold     League = "gold"
	LeaguePlatinum League = "platinum"
	LeagueDiamond  League = "diamond"
	LeagueMaster   League = "master"
)

type User struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Username string `gorm:"uniqueIndex" json:"username"`
	Image    string `json:"image"`
	Bio      string `json:"bio"`

	Role Role `gorm:"type:text;default:'USER'" json:"role"`

	// Progression aggregate. XPPoints is the single source of truth; level,
	// level_name and league are derived from it on every mutation and stored
	// redundantly for query performance.
	XPPoints  int    `gorm:"default:0;index" json:"xpPoints"`
	Level     int    `gorm:"default:1" json:"level"`
	LevelName string `gorm:"type:text" json:"levelName"`
	League    League `gorm:"type:text;default:'bronze';index" json:"league"`

	// Recomputed from daily_activities rows on every completion and restore.
	CurrentStreak int `gorm:"default:0" json:"currentStreak"`
	LongestStreak int `gorm:"default:0" json:"longestStreak"`

	ChallengesCompleted int `gorm:"default:0" json:"challengesCompleted"`
	SkillsMastered      int `gorm:"default:0" json:"skillsMastered"`

	// Best (lowest) leaderboard rank ever observed. 0 means never ranked.
	HighestLeaderboardRank int `gorm:"default:0" json:"highestLeaderboardRank"`

	// Set by the streak-restore flow when a broken streak is repaired.
	StreakRestored bool `gorm:"default:false" json:"streakRestored"`

	Password string `json:"-"`
}

func (User) TableName() string {
	return "users"
}
