package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skillforge-app/skillforge-backend/internal/services"
)

// GetLeaderboard returns one ranked, filtered page.
func GetLeaderboard(c *gin.Context) {
	var filters services.LeaderboardFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := services.GetLeaderboard(filters, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetMyRank returns the caller's global rank, percentile and neighbors.
func GetMyRank(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := services.GetMyRank(userID, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
