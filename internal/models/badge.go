package models

import "time"

type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "COMMON"
	RarityRare      BadgeRarity = "RARE"
	RarityEpic      BadgeRarity = "EPIC"
	RarityLegendary BadgeRarity = "LEGENDARY"
)

// BadgeCriteria is the closed set of badge criteria kinds. Evaluation
// dispatches on this value in the badge service.
type BadgeCriteria string

const (
	CriteriaLessonsCompleted    BadgeCriteria = "lessons_completed"
	CriteriaStreak              BadgeCriteria = "streak"
	CriteriaPerfectTests        BadgeCriteria = "perfect_tests"
	CriteriaLessonsPerDay       BadgeCriteria = "lessons_per_day"
	CriteriaChallengesCompleted BadgeCriteria = "challenges_completed"
	CriteriaXPEarned            BadgeCriteria = "xp_earned"
	CriteriaLeaderboardRank     BadgeCriteria = "leaderboard_rank"
	CriteriaLeague              BadgeCriteria = "league"
	CriteriaCategoriesExplored  BadgeCriteria = "categories_explored"
	CriteriaSkillsMastered      BadgeCriteria = "skills_mastered"
	CriteriaStreakRestored      BadgeCriteria = "streak_restored"
	CriteriaEarlyCompletion     BadgeCriteria = "early_completion"
	CriteriaLateCompletion      BadgeCriteria = "late_completion"
)

type Badge struct {
	ID          string        `gorm:"primaryKey;type:text" json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"` // Name of the Lucide icon
	Criteria    BadgeCriteria `gorm:"type:text" json:"criteria"`
	// Threshold the criteria stat must reach. For league criteria this is the
	// league index (bronze=1 .. master=6).
	Threshold int         `json:"threshold"`
	XPReward  int         `gorm:"default:0" json:"xpReward"`
	Rarity    BadgeRarity `gorm:"type:text;default:'COMMON'" json:"rarity"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge records an earned badge. The composite primary key makes a
// duplicate award a constraint violation rather than a double payout.
type UserBadge struct {
	UserID   string    `gorm:"primaryKey;type:text" json:"userId"`
	BadgeID  string    `gorm:"primaryKey;type:text" json:"badgeId"`
	EarnedAt time.Time `json:"earnedAt"`
	// Claimed flips false -> true exactly once; it is a seen/acknowledged flag
	// for the UI, the XP was already granted at earning time.
	Claimed bool `gorm:"default:false" json:"claimed"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
