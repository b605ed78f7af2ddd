package services

import (
	"testing"

	"github.com/skillforge-app/skillforge-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeLevel_Milestones(t *testing.T) {
	cases := []struct {
		xp        int
		level     int
		levelName string
	}{
		{0, 1, "Newcomer"},
		{99, 1, "Newcomer"},
		{100, 2, "Explorer"},
		{450, 4, "Student"},
		{950, 5, "Practitioner"},
		{1000, 6, "Achiever"},
		{11000, 15, "Grandmaster"},
	}
	for _, tc := range cases {
		info := ComputeLevel(tc.xp)
		assert.Equal(t, tc.level, info.Level, "xp=%d", tc.xp)
		assert.Equal(t, tc.levelName, info.LevelName, "xp=%d", tc.xp)
	}
}

func TestComputeLevel_Progress(t *testing.T) {
	// Level 5 spans 700..1000; 950 is 250 into a 300 span.
	info := ComputeLevel(950)
	assert.Equal(t, 250, info.XPIntoLevel)
	assert.Equal(t, 300, info.XPForNextLevel)
	assert.Equal(t, 83, info.XPProgress)
	assert.Equal(t, "Achiever", info.NextLevelName)

	// Exactly on a boundary: 0 into the new level.
	info = ComputeLevel(1000)
	assert.Equal(t, 0, info.XPIntoLevel)
	assert.Equal(t, 0, info.XPProgress)
}

func TestComputeLevel_BeyondTable(t *testing.T) {
	// Past Grandmaster every level costs a flat amount and keeps the top name.
	info := ComputeLevel(13500)
	assert.Equal(t, 16, info.Level)
	assert.Equal(t, "Grandmaster", info.LevelName)
	assert.Equal(t, "Grandmaster", info.NextLevelName)
	assert.Equal(t, 2500, info.XPForNextLevel)
}

func TestComputeLevel_NegativeClamps(t *testing.T) {
	info := ComputeLevel(-50)
	assert.Equal(t, 1, info.Level)
	assert.Equal(t, 0, info.XPIntoLevel)
}

func TestLevelForXP_Monotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 30000; xp += 25 {
		level := LevelForXP(xp)
		assert.GreaterOrEqual(t, level, prev, "level regressed at xp=%d", xp)
		prev = level
	}
}

func TestLeagueOf(t *testing.T) {
	cases := []struct {
		xp     int
		league models.League
	}{
		{0, models.LeagueBronze},
		{999, models.LeagueBronze},
		{1000, models.LeagueSilver},
		{2999, models.LeagueSilver},
		{3000, models.LeagueGold},
		{6000, models.LeaguePlatinum},
		{10000, models.LeagueDiamond},
		{14999, models.LeagueDiamond},
		{15000, models.LeagueMaster},
		{100000, models.LeagueMaster},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.league, LeagueOf(tc.xp), "xp=%d", tc.xp)
	}
}

func TestNextLeagueThreshold(t *testing.T) {
	next, ok := NextLeagueThreshold(500)
	assert.True(t, ok)
	assert.Equal(t, 1000, next)

	next, ok = NextLeagueThreshold(9999)
	assert.True(t, ok)
	assert.Equal(t, 10000, next)

	_, ok = NextLeagueThreshold(20000)
	assert.False(t, ok)
}

func TestLeagueRank(t *testing.T) {
	assert.Equal(t, 1, LeagueRank(models.LeagueBronze))
	assert.Equal(t, 6, LeagueRank(models.LeagueMaster))
	assert.Equal(t, 0, LeagueRank(models.League("plastic")))
}
