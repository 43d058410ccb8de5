package handlers

import (
	"net/http"

	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/gin-gonic/gin"
)

// windowQuery holds optional month/year query parameters. Range checks on
// month happen in the ranking package so that every caller gets the same
// error.
type windowQuery struct {
	Month *int `form:"month"`
	Year  *int `form:"year"`
}

// bindWindow defaults missing values to the current month in the household
// time zone
func (h *Handler) bindWindow(c *gin.Context, household *models.Household) (month, year int, ok bool) {
	var q windowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return 0, 0, false
	}

	now := h.now().In(household.Location())
	month, year = int(now.Month())-1, now.Year()
	if q.Month != nil {
		month = *q.Month
	}
	if q.Year != nil {
		year = *q.Year
	}
	return month, year, true
}

// CurrentLeaderboard returns the standings of the current month
func (h *Handler) CurrentLeaderboard(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}

	resp, err := h.leaderboards.Current(c.Request.Context(), household, h.now())
	if err != nil {
		h.respondError(c, err, "Failed to build leaderboard")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MonthLeaderboard returns the standings of ?month= (0 = January) and ?year=
func (h *Handler) MonthLeaderboard(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}
	month, year, ok := h.bindWindow(c, household)
	if !ok {
		return
	}

	resp, err := h.leaderboards.Month(c.Request.Context(), household, month, year, h.now())
	if err != nil {
		h.respondError(c, err, "Invalid leaderboard window")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// YearLeaderboard returns the standings of ?year=
func (h *Handler) YearLeaderboard(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}
	_, year, ok := h.bindWindow(c, household)
	if !ok {
		return
	}

	resp, err := h.leaderboards.Year(c.Request.Context(), household, year, h.now())
	if err != nil {
		h.respondError(c, err, "Invalid leaderboard window")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AllTimeLeaderboard returns standings over every completion
func (h *Handler) AllTimeLeaderboard(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}

	resp, err := h.leaderboards.AllTime(c.Request.Context(), household)
	if err != nil {
		h.respondError(c, err, "Failed to build leaderboard")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// LeaderboardHistory returns one leaderboard per month of ?year= up to now
func (h *Handler) LeaderboardHistory(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}
	_, year, ok := h.bindWindow(c, household)
	if !ok {
		return
	}

	resp, err := h.leaderboards.History(c.Request.Context(), household, year, h.now())
	if err != nil {
		h.respondError(c, err, "Invalid leaderboard window")
		return
	}

	c.JSON(http.StatusOK, resp)
}

type dashboardQuery struct {
	Period string `form:"period,default=month"`
}

// Dashboard returns per-task completion counts for ?period=month|year|total
func (h *Handler) Dashboard(c *gin.Context) {
	household, ok := h.household(c)
	if !ok {
		return
	}

	var q dashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	resp, err := h.leaderboards.Breakdown(c.Request.Context(), household, q.Period, h.now())
	if err != nil {
		h.respondError(c, err, "Invalid dashboard period")
		return
	}

	c.JSON(http.StatusOK, resp)
}
