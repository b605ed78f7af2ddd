package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/services"
)

// GetChallenges returns the caller's 3 active challenge slots with live
// progress, rotating them first if the UTC day has rolled over.
func GetChallenges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	challenges, err := services.GetChallenges(userID, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenges": challenges})
}

// ClaimChallenge claims a completed challenge's reward for the caller.
func ClaimChallenge(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	allowed, err := database.CheckRateLimit("claim:"+userID, 30, time.Minute)
	if err == nil && !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many claim attempts"})
		return
	}

	result, err := services.ClaimChallenge(userID, c.Param("id"), time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
