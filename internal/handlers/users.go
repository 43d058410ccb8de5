package handlers

import (
	"net/http"

	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/gin-gonic/gin"
)

// ListUsers returns the household members in creation order
func (h *Handler) ListUsers(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}

	users, err := h.store.ListUsers(c.Request.Context(), household.ID)
	if err != nil {
		h.respondError(c, err, "Failed to query users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// GetUser returns a specific member
func (h *Handler) GetUser(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}
	userID, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), household.ID, userID)
	if err != nil {
		h.respondError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser adds a member to the household
func (h *Handler) CreateUser(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}

	var req models.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user := models.NewUser(household.ID, req)
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		h.respondError(c, err, "Failed to create user")
		return
	}

	h.leaderboards.Invalidate(c.Request.Context(), household)
	h.log.Info("user created", "household_id", household.ID, "user_id", user.ID)

	c.JSON(http.StatusCreated, user)
}

// UpdateUser changes a member's profile
func (h *Handler) UpdateUser(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}
	userID, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.GetUser(ctx, household.ID, userID)
	if err != nil {
		h.respondError(c, err, "User not found")
		return
	}

	req.Apply(user)
	if err := h.store.UpdateUser(ctx, user); err != nil {
		h.respondError(c, err, "Failed to update user")
		return
	}

	h.leaderboards.Invalidate(ctx, household)

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a member. Their completions stay recorded and drop out
// of leaderboards.
func (h *Handler) DeleteUser(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}
	userID, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.store.DeleteUser(ctx, household.ID, userID); err != nil {
		h.respondError(c, err, "Failed to delete user")
		return
	}

	h.leaderboards.Invalidate(ctx, household)
	h.log.Info("user deleted", "household_id", household.ID, "user_id", userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
		"user_id": userID,
	})
}
