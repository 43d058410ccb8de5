package handlers

import (
	"net/http"

	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/gin-gonic/gin"
)

// GetHousehold returns the household settings
func (h *Handler) GetHousehold(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, household)
}

// UpdateHousehold changes the name, token name, theme color or time zone
func (h *Handler) UpdateHousehold(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}

	var req models.HouseholdUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	updated := *household
	req.Apply(&updated)
	if err := h.store.UpdateHousehold(c.Request.Context(), &updated); err != nil {
		h.respondError(c, err, "Failed to update household")
		return
	}

	// token name and time zone change every cached leaderboard
	h.leaderboards.Invalidate(c.Request.Context(), &updated)

	c.JSON(http.StatusOK, updated)
}
