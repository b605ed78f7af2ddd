package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/skillforge-app/skillforge-backend/internal/config"
	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	apperrors "github.com/skillforge-app/skillforge-backend/pkg/errors"
	"github.com/skillforge-app/skillforge-backend/pkg/utils"
	"gorm.io/gorm"
)

const (
	PromotionUp   = "up"
	PromotionDown = "down"

	// A user this close to the next league threshold shows as promotable.
	promotionWindowXP = 500
	// Below this trailing-7-day XP gain, a user outside the top 5 shows as
	// at risk of demotion.
	demotionGainXP  = 100
	demotionMinRank = 5

	defaultPageLimit = 25
	maxPageLimit     = 100
)

type LeaderboardFilters struct {
	League    string `form:"league"`
	Skill     string `form:"skill"`
	Timeframe string `form:"timeframe"` // all (default), daily, weekly
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type LeaderboardRow struct {
	Rank      int           `json:"rank"`
	UserID    string        `json:"userId"`
	Username  string        `json:"username"`
	Name      string        `json:"name"`
	Avatar    string        `json:"avatar"`
	Level     int           `json:"level"`
	League    models.League `json:"league"`
	XPPoints  int           `json:"xpPoints"`
	Score     int           `json:"score"` // ordering key: all-time or windowed XP
	Accuracy  float64       `json:"accuracy"`
	Skills    []string      `json:"skills"`
	XPGain    int           `json:"xpGain"`
	Promotion *string       `json:"promotion"`
}

type LeaderboardPage struct {
	Rows       []LeaderboardRow `json:"rows"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalRows  int              `json:"totalRows"`
	TotalPages int              `json:"totalPages"`
}

type MyRankResult struct {
	Rank       int              `json:"rank"`
	TotalUsers int              `json:"totalUsers"`
	Percentile float64          `json:"percentile"`
	Neighbors  []LeaderboardRow `json:"neighbors"`
}

func normalizeFilters(f LeaderboardFilters) LeaderboardFilters {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageLimit
	}
	if f.Limit > maxPageLimit {
		f.Limit = maxPageLimit
	}
	if f.Timeframe != "daily" && f.Timeframe != "weekly" {
		f.Timeframe = "all"
	}
	return f
}

func leaderboardCacheKey(f LeaderboardFilters) string {
	return fmt.Sprintf("leaderboard:%s:%s:%s:%d:%d", f.Timeframe, f.League, f.Skill, f.Page, f.Limit)
}

// rankedUsers builds the full ordered ranking for the given filters.
// Recruiters and admins never appear. Ordering is score descending with a
// stable secondary ascending sort on user id so pagination is deterministic
// across ties.
func rankedUsers(f LeaderboardFilters, now time.Time) ([]models.User, []int, error) {
	query := database.DB.Model(&models.User{}).
		Where("role NOT IN ?", []models.Role{models.RoleRecruiter, models.RoleAdmin})

	if f.League != "" {
		query = query.Where("league = ?", f.League)
	}
	if f.Skill != "" {
		sub := database.DB.Model(&models.CompletionRecord{}).
			Select("completion_records.user_id").
			Joins("JOIN lessons ON lessons.id = completion_records.lesson_id").
			Where(`lower(lessons.skill_name) LIKE ? ESCAPE '\'`, utils.SanitizeSearchQuery(strings.ToLower(f.Skill)))
		query = query.Where("id IN (?)", sub)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, nil, err
	}

	scores := make([]int, len(users))
	switch f.Timeframe {
	case "daily", "weekly":
		since := startOfUTCDay(now)
		if f.Timeframe == "weekly" {
			since = now.UTC().Add(-7 * 24 * time.Hour)
		}
		ids := make([]string, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}
		gained, err := windowedXP(ids, since)
		if err != nil {
			return nil, nil, err
		}
		for i, u := range users {
			scores[i] = gained[u.ID]
		}
	default:
		for i, u := range users {
			scores[i] = u.XPPoints
		}
	}

	idx := make([]int, len(users))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if scores[idx[a]] != scores[idx[b]] {
			return scores[idx[a]] > scores[idx[b]]
		}
		return users[idx[a]].ID < users[idx[b]].ID
	})

	orderedUsers := make([]models.User, len(users))
	orderedScores := make([]int, len(users))
	for rank, i := range idx {
		orderedUsers[rank] = users[i]
		orderedScores[rank] = scores[i]
	}
	return orderedUsers, orderedScores, nil
}

// ratchetBestRank records the best (lowest) rank ever observed for a user.
// The guard in the WHERE clause keeps it monotonic under concurrent reads.
func ratchetBestRank(user *models.User, rank int) {
	if user.HighestLeaderboardRank != 0 && user.HighestLeaderboardRank <= rank {
		return
	}
	database.DB.Model(&models.User{}).
		Where("id = ? AND (highest_leaderboard_rank = 0 OR highest_leaderboard_rank > ?)", user.ID, rank).
		UpdateColumn("highest_leaderboard_rank", rank)
}

// buildRow fills the derived per-row fields for one ranked user.
func buildRow(user *models.User, rank, score int, now time.Time) (LeaderboardRow, error) {
	row := LeaderboardRow{
		Rank:     rank,
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		Avatar:   user.Image,
		Level:    user.Level,
		League:   user.League,
		XPPoints: user.XPPoints,
		Score:    score,
		Skills:   []string{},
	}

	var accuracy *float64
	if err := database.DB.Model(&models.CompletionRecord{}).
		Select("AVG(best_accuracy)").
		Where("user_id = ?", user.ID).
		Scan(&accuracy).Error; err != nil {
		return row, err
	}
	if accuracy != nil {
		row.Accuracy = math.Round(*accuracy*100) / 100
	}

	// Top-3 most-completed lesson categories; name-ordered among equals so
	// the output is deterministic.
	type catRow struct {
		Category string
		N        int
	}
	var cats []catRow
	if err := database.DB.Model(&models.CompletionRecord{}).
		Select("lessons.category as category, SUM(completion_records.completion_count) as n").
		Joins("JOIN lessons ON lessons.id = completion_records.lesson_id").
		Where("completion_records.user_id = ?", user.ID).
		Group("lessons.category").
		Order("n DESC, category ASC").
		Limit(3).
		Scan(&cats).Error; err != nil {
		return row, err
	}
	for _, c := range cats {
		row.Skills = append(row.Skills, c.Category)
	}

	gained, err := windowedXP([]string{user.ID}, now.UTC().Add(-7*24*time.Hour))
	if err != nil {
		return row, err
	}
	row.XPGain = gained[user.ID]

	if next, ok := NextLeagueThreshold(user.XPPoints); ok && next-user.XPPoints <= promotionWindowXP {
		up := PromotionUp
		row.Promotion = &up
	}
	// Demotion risk is checked after promotion and wins when both hold.
	if row.XPGain < demotionGainXP && rank > demotionMinRank {
		down := PromotionDown
		row.Promotion = &down
	}

	return row, nil
}

// GetLeaderboard produces one page of the ranked, filtered leaderboard with
// all derived per-row fields. Pages are cached in Redis with a short TTL and
// invalidated on every XP mutation.
func GetLeaderboard(filters LeaderboardFilters, now time.Time) (*LeaderboardPage, error) {
	f := normalizeFilters(filters)

	cacheKey := leaderboardCacheKey(f)
	ttl := time.Duration(0)
	if config.AppConfig != nil {
		ttl = time.Duration(config.AppConfig.LeaderboardCacheTTL) * time.Second
	}
	if ttl > 0 {
		var cached LeaderboardPage
		if err := database.CacheGet(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	users, scores, err := rankedUsers(f, now)
	if err != nil {
		return nil, err
	}

	totalRows := len(users)
	totalPages := (totalRows + f.Limit - 1) / f.Limit
	start := (f.Page - 1) * f.Limit
	end := start + f.Limit
	if start > totalRows {
		start = totalRows
	}
	if end > totalRows {
		end = totalRows
	}

	// Unfiltered all-time rank is the one the rank ratchet records.
	if f.League == "" && f.Skill == "" && f.Timeframe == "all" {
		for i := range users {
			ratchetBestRank(&users[i], i+1)
		}
	}

	rows := make([]LeaderboardRow, 0, end-start)
	for i := start; i < end; i++ {
		row, err := buildRow(&users[i], i+1, scores[i], now)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	page := &LeaderboardPage{
		Rows:       rows,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalRows:  totalRows,
		TotalPages: totalPages,
	}

	if ttl > 0 {
		database.CacheSet(cacheKey, page, ttl)
	}
	return page, nil
}

// GetMyRank returns the caller's global all-time rank and percentile plus a
// window of 5 neighbors on each side.
func GetMyRank(userID string, now time.Time) (*MyRankResult, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}
	if user.Role == models.RoleRecruiter || user.Role == models.RoleAdmin {
		return nil, apperrors.NotFound("user is not ranked")
	}

	users, scores, err := rankedUsers(LeaderboardFilters{Timeframe: "all"}, now)
	if err != nil {
		return nil, err
	}

	myIndex := -1
	for i := range users {
		if users[i].ID == userID {
			myIndex = i
			break
		}
	}
	if myIndex == -1 {
		return nil, apperrors.NotFound("user is not ranked")
	}

	rank := myIndex + 1
	ratchetBestRank(&users[myIndex], rank)

	total := len(users)
	percentile := math.Round(100*float64(total-rank+1)/float64(total)*100) / 100

	start := myIndex - 5
	if start < 0 {
		start = 0
	}
	end := myIndex + 6
	if end > total {
		end = total
	}

	neighbors := make([]LeaderboardRow, 0, end-start)
	for i := start; i < end; i++ {
		row, err := buildRow(&users[i], i+1, scores[i], now)
		if err != nil {
			return nil, err
		}
		neighbors = append(neighbors, row)
	}

	return &MyRankResult{
		Rank:       rank,
		TotalUsers: total,
		Percentile: percentile,
		Neighbors:  neighbors,
	}, nil
}
