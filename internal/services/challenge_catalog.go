package services

type ChallengeType string

const (
	ChallengeDaily  ChallengeType = "daily"
	ChallengeWeekly ChallengeType = "weekly"
)

// ChallengeKind selects the progress evaluator for a catalog entry. Progress
// is always recomputed from the ledger with an explicit reference time, never
// cached as a mutable counter.
type ChallengeKind string

const (
	KindLessonsInWindow  ChallengeKind = "lessons_in_window"
	KindPerfectInWindow  ChallengeKind = "perfect_in_window"
	KindXPInWindow       ChallengeKind = "xp_in_window"
	KindCategoryInWindow ChallengeKind = "category_in_window"
	KindRetakesInWindow  ChallengeKind = "retakes_in_window"
	KindCategorySpread   ChallengeKind = "category_spread"
)

// ChallengeDef is one hand-authored catalog entry: a tagged variant of
// {kind, params}, not a closure, so progress evaluation stays pure and
// testable.
type ChallengeDef struct {
	ID          string        `json:"id"`
	Type        ChallengeType `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	XPReward    int           `json:"xpReward"`
	Kind        ChallengeKind `json:"-"`
	Target      int           `json:"-"`
	// Category restricts category_in_window entries to one lesson category.
	Category string `json:"-"`
}

// challengeCatalog is the closed, hand-authored challenge set. IDs are stable
// because clients and claim rows reference them.
var challengeCatalog = []ChallengeDef{
	{
		ID:          "daily_three_lessons",
		Type:        ChallengeDaily,
		Title:       "Daily Dedication",
		Description: "Complete 3 lessons today",
		XPReward:    40,
		Kind:        KindLessonsInWindow,
		Target:      3,
	},
	{
		ID:          "daily_perfect_test",
		Type:        ChallengeDaily,
		Title:       "Flawless",
		Description: "Score 100% on a test today",
		XPReward:    50,
		Kind:        KindPerfectInWindow,
		Target:      1,
	},
	{
		ID:          "daily_xp_100",
		Type:        ChallengeDaily,
		Title:       "XP Hunter",
		Description: "Earn 100 XP today",
		XPReward:    35,
		Kind:        KindXPInWindow,
		Target:      100,
	},
	{
		ID:          "daily_algorithms",
		Type:        ChallengeDaily,
		Title:       "Algorithm Hour",
		Description: "Complete an Algorithms lesson today",
		XPReward:    30,
		Kind:        KindCategoryInWindow,
		Target:      1,
		Category:    "Algorithms",
	},
	{
		ID:          "daily_review",
		Type:        ChallengeDaily,
		Title:       "Back to Basics",
		Description: "Retake 2 lessons you already finished",
		XPReward:    25,
		Kind:        KindRetakesInWindow,
		Target:      2,
	},
	{
		ID:          "weekly_ten_lessons",
		Type:        ChallengeWeekly,
		Title:       "Marathon Learner",
		Description: "Complete 10 lessons this week",
		XPReward:    150,
		Kind:        KindLessonsInWindow,
		Target:      10,
	},
	{
		ID:          "weekly_xp_500",
		Type:        ChallengeWeekly,
		Title:       "XP Machine",
		Description: "Earn 500 XP this week",
		XPReward:    120,
		Kind:        KindXPInWindow,
		Target:      500,
	},
	{
		ID:          "weekly_explorer",
		Type:        ChallengeWeekly,
		Title:       "Curriculum Explorer",
		Description: "Complete lessons from 3 different categories this week",
		XPReward:    130,
		Kind:        KindCategorySpread,
		Target:      3,
	},
}

// ChallengeCatalog returns the full catalog in stable order.
func ChallengeCatalog() []ChallengeDef {
	return challengeCatalog
}

func challengesOfType(t ChallengeType) []ChallengeDef {
	var out []ChallengeDef
	for _, def := range challengeCatalog {
		if def.Type == t {
			out = append(out, def)
		}
	}
	return out
}

func challengeByID(id string) (ChallengeDef, bool) {
	for _, def := range challengeCatalog {
		if def.ID == id {
			return def, true
		}
	}
	return ChallengeDef{}, false
}
