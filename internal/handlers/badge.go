package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skillforge-app/skillforge-backend/internal/services"
)

// GetBadges returns the badge catalog with the caller's progress per badge.
func GetBadges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	badges, err := services.GetBadges(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

// CheckBadges triggers a badge re-evaluation for the caller and returns any
// newly awarded badges.
func CheckBadges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	newBadges, err := services.CheckAndAwardBadges(userID, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"newBadges": newBadges})
}

// ClaimBadge acknowledges an earned badge for the caller.
func ClaimBadge(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := services.ClaimBadge(userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claimed": true})
}
