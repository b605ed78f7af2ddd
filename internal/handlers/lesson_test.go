package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func completeLessonRequest(t *testing.T, userID, lessonID string, correct, total int) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]int{
		"correctAnswers": correct,
		"totalQuestions": total,
	})
	req, _ := http.NewRequest("POST", "/api/lessons/"+lessonID+"/complete", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: lessonID}}
	c.Set("userId", userID)

	CompleteLesson(c)
	return w
}

func TestCompleteLesson_Handler(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	createTestUser(t, "user1", 0)
	createTestLesson(t, "lesson1", models.DifficultyIntermediate, "Programming", "Go Basics")

	w := completeLessonRequest(t, "user1", "lesson1", 9, 10)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result struct {
			XPEarned          int     `json:"xpEarned"`
			TotalXP           int     `json:"totalXP"`
			Accuracy          float64 `json:"accuracy"`
			IsFirstCompletion bool    `json:"isFirstCompletion"`
		} `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 75, resp.Result.XPEarned)
	assert.Equal(t, 75, resp.Result.TotalXP)
	assert.Equal(t, 90.0, resp.Result.Accuracy)
	assert.True(t, resp.Result.IsFirstCompletion)
}

func TestCompleteLesson_Handler_LessonNotFound(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)
	createTestUser(t, "user1", 0)

	w := completeLessonRequest(t, "user1", "no-such-lesson", 9, 10)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp["kind"])
}

func TestCompleteLesson_Handler_InvalidBody(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)
	createTestUser(t, "user1", 0)
	createTestLesson(t, "lesson1", models.DifficultyBeginner, "Programming", "Go Basics")

	// Missing totalQuestions fails binding before the service runs.
	req, _ := http.NewRequest("POST", "/api/lessons/lesson1/complete", bytes.NewBufferString(`{"correctAnswers": 5}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "lesson1"}}
	c.Set("userId", "user1")

	CompleteLesson(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteLesson_Handler_RequiresAuth(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	req, _ := http.NewRequest("POST", "/api/lessons/lesson1/complete", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	CompleteLesson(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetLessonProgress_Handler(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)
	createTestUser(t, "user1", 0)
	createTestLesson(t, "lesson1", models.DifficultyBeginner, "Programming", "Go Basics")

	completeLessonRequest(t, "user1", "lesson1", 8, 10)

	req, _ := http.NewRequest("GET", "/api/lessons/lesson1/progress", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "lesson1"}}
	c.Set("userId", "user1")

	GetLessonProgress(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Record models.CompletionRecord `json:"record"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Record.CompletionCount)
	assert.Equal(t, 80.0, resp.Record.BestAccuracy)
}
