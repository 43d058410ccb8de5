package handlers

import (
	"net/http"

	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/gin-gonic/gin"
)

type listTasksQuery struct {
	IncludeInactive bool `form:"include_inactive"`
}

// ListTasks returns the household's tasks, active ones only unless
// include_inactive=true
func (h *Handler) ListTasks(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}

	var q listTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	tasks, err := h.store.ListTasks(c.Request.Context(), household.ID, !q.IncludeInactive)
	if err != nil {
		h.respondError(c, err, "Failed to query tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"household_id": household.ID,
		"tasks":        tasks,
		"count":        len(tasks),
	})
}

// GetTask returns a specific task
func (h *Handler) GetTask(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.store.GetTask(c.Request.Context(), household.ID, taskID)
	if err != nil {
		h.respondError(c, err, "Task not found")
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask adds an active task
func (h *Handler) CreateTask(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}

	var req models.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	task := models.NewTask(household.ID, req)
	if err := h.store.CreateTask(c.Request.Context(), task); err != nil {
		h.respondError(c, err, "Failed to create task")
		return
	}

	h.leaderboards.Invalidate(c.Request.Context(), household)

	c.JSON(http.StatusCreated, task)
}

// UpdateTask edits a task. Points already earned are not recalculated.
func (h *Handler) UpdateTask(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	var req models.TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	task, err := h.store.GetTask(ctx, household.ID, taskID)
	if err != nil {
		h.respondError(c, err, "Task not found")
		return
	}

	req.Apply(task)
	if err := h.store.UpdateTask(ctx, task); err != nil {
		h.respondError(c, err, "Failed to update task")
		return
	}

	h.leaderboards.Invalidate(ctx, household)

	c.JSON(http.StatusOK, task)
}

// DeleteTask deactivates a task
func (h *Handler) DeleteTask(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.store.DeleteTask(ctx, household.ID, taskID); err != nil {
		h.respondError(c, err, "Failed to delete task")
		return
	}

	h.leaderboards.Invalidate(ctx, household)

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deactivated successfully",
		"task_id": taskID,
	})
}
