package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/middleware"
	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/gin-gonic/gin"
)

// CompleteTask records a completion for the authenticated user
func (h *Handler) CompleteTask(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	userID, ok := middleware.GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	// The body is optional
	var req models.CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var at time.Time
	if req.CompletedAt != nil {
		at = *req.CompletedAt
	}

	completion, err := h.completions.Record(c.Request.Context(), household, taskID, userID, at, h.now())
	if err != nil {
		h.respondError(c, err, "Failed to complete task")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Task completed successfully",
		"completion": completion.ToResponse(),
		"token_name": household.Label(),
	})
}

type recentQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=366"`
}

// ListTaskCompletions returns the recent completions feed of a task
func (h *Handler) ListTaskCompletions(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	var q recentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	completions, err := h.completions.Recent(c.Request.Context(), household, taskID, q.Days, h.now())
	if err != nil {
		h.respondError(c, err, "Failed to query completions")
		return
	}

	resp := make([]models.CompletionResponse, 0, len(completions))
	for i := range completions {
		resp = append(resp, completions[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"task_id":     taskID,
		"completions": resp,
		"count":       len(resp),
	})
}

// ListCompletions returns the household's recent completions feed and how
// many completions were recorded today
func (h *Handler) ListCompletions(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}

	var q recentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	feed, err := h.completions.HouseholdFeed(c.Request.Context(), household, q.Days, h.now())
	if err != nil {
		h.respondError(c, err, "Failed to query completions")
		return
	}

	resp := make([]models.CompletionResponse, 0, len(feed.Completions))
	for i := range feed.Completions {
		resp = append(resp, feed.Completions[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"completions":     resp,
		"count":           len(resp),
		"completed_today": feed.CompletedToday,
	})
}

// UndoCompletion deletes a completion recorded by the authenticated user
func (h *Handler) UndoCompletion(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}
	completionID, ok := parseID(c, "id", "completion")
	if !ok {
		return
	}

	userID, ok := middleware.GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.completions.Undo(c.Request.Context(), household, userID, completionID); err != nil {
		h.respondError(c, err, "Failed to undo completion")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Completion undone successfully",
		"completion_id": completionID,
	})
}
