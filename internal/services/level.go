package services

import (
	"math"

	"github.com/skillforge-app/skillforge-backend/internal/models"
)

// LevelInfo is everything derived from a cumulative XP total. All fields are
// pure functions of the input; nothing here touches the clock or the store.
type LevelInfo struct {
	Level          int    `json:"level"`
	LevelName      string `json:"levelName"`
	XPIntoLevel    int    `json:"xpIntoLevel"`
	XPForNextLevel int    `json:"xpForNextLevel"`
	XPProgress     int    `json:"xpProgress"`
	NextLevelName  string `json:"nextLevelName"`
}

type levelStep struct {
	Name string
	XP   int // cumulative XP at which this level starts
}

// levelTable is the milestone curve. Entry i is level i+1. Past the last
// entry every additional level costs prestigeLevelXP.
var levelTable = []levelStep{
	{"Newcomer", 0},
	{"Explorer", 100},
	{"Apprentice", 250},
	{"Student", 450},
	{"Practitioner", 700},
	{"Achiever", 1000},
	{"Specialist", 1400},
	{"Expert", 1900},
	{"Strategist", 2500},
	{"Veteran", 3300},
	{"Mentor", 4300},
	{"Virtuoso", 5500},
	{"Champion", 7000},
	{"Luminary", 8800},
	{"Grandmaster", 11000},
}

const prestigeLevelXP = 2500

// levelFloor returns the cumulative XP at which the given level starts.
func levelFloor(level int) int {
	if level <= len(levelTable) {
		return levelTable[level-1].XP
	}
	return levelTable[len(levelTable)-1].XP + (level-len(levelTable))*prestigeLevelXP
}

func levelName(level int) string {
	if level <= len(levelTable) {
		return levelTable[level-1].Name
	}
	return levelTable[len(levelTable)-1].Name
}

// LevelForXP returns the level reached at the given cumulative XP.
func LevelForXP(xpPoints int) int {
	if xpPoints < 0 {
		xpPoints = 0
	}
	top := len(levelTable)
	if xpPoints >= levelTable[top-1].XP {
		return top + (xpPoints-levelTable[top-1].XP)/prestigeLevelXP
	}
	level := 1
	for i, step := range levelTable {
		if xpPoints < step.XP {
			break
		}
		level = i + 1
	}
	return level
}

// ComputeLevel maps cumulative XP to the full set of derived level fields.
func ComputeLevel(xpPoints int) LevelInfo {
	if xpPoints < 0 {
		xpPoints = 0
	}
	level := LevelForXP(xpPoints)
	floor := levelFloor(level)
	ceil := levelFloor(level + 1)

	into := xpPoints - floor
	span := ceil - floor
	progress := int(math.Round(100 * float64(into) / float64(span)))
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	return LevelInfo{
		Level:          level,
		LevelName:      levelName(level),
		XPIntoLevel:    into,
		XPForNextLevel: span,
		XPProgress:     progress,
		NextLevelName:  levelName(level + 1),
	}
}

// leagueThresholds are the fixed league breakpoints over cumulative XP.
// Master has no upper bound.
var leagueThresholds = []struct {
	League models.League
	MinXP  int
}{
	{models.LeagueBronze, 0},
	{models.LeagueSilver, 1000},
	{models.LeagueGold, 3000},
	{models.LeaguePlatinum, 6000},
	{models.LeagueDiamond, 10000},
	{models.LeagueMaster, 15000},
}

// LeagueOf returns the league for a cumulative XP total.
func LeagueOf(xpPoints int) models.League {
	league := models.LeagueBronze
	for _, t := range leagueThresholds {
		if xpPoints >= t.MinXP {
			league = t.League
		}
	}
	return league
}

// NextLeagueThreshold returns the XP needed to enter the next league.
// ok is false for master, which has no next league.
func NextLeagueThreshold(xpPoints int) (threshold int, ok bool) {
	for _, t := range leagueThresholds {
		if xpPoints < t.MinXP {
			return t.MinXP, true
		}
	}
	return 0, false
}

// LeagueRank returns the 1-based index of a league (bronze=1 .. master=6).
// Used by league badge criteria.
func LeagueRank(league models.League) int {
	for i, t := range leagueThresholds {
		if t.League == league {
			return i + 1
		}
	}
	return 0
}
