package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/skillforge-app/skillforge-backend/pkg/errors"
	"github.com/skillforge-app/skillforge-backend/pkg/logger"
)

// respondError maps service errors onto HTTP responses. Business-rule
// violations carry their own status and kind; anything else is a 500.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message, "kind": appErr.Kind})
		return
	}
	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled service error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return "", false
	}
	return userID.(string), true
}
