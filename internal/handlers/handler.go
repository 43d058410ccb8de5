package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/logger"
	"github.com/Mikemeister8/octogon-home-app/internal/middleware"
	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/Mikemeister8/octogon-home-app/internal/ranking"
	"github.com/Mikemeister8/octogon-home-app/internal/repository"
	"github.com/Mikemeister8/octogon-home-app/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler serves the household API
type Handler struct {
	store        repository.Store
	leaderboards *service.LeaderboardService
	completions  *service.CompletionService
	log          *logger.Logger
	version      string
	now          func() time.Time
}

func New(store repository.Store, leaderboards *service.LeaderboardService, completions *service.CompletionService, log *logger.Logger, version string) *Handler {
	return &Handler{
		store:        store,
		leaderboards: leaderboards,
		completions:  completions,
		log:          log,
		version:      version,
		now:          time.Now,
	}
}

// WithClock overrides the handler clock
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

// respondError maps service and store errors to HTTP responses.
// Unknown errors are logged and returned as 500 with message.
func (h *Handler) respondError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ranking.ErrInvalidMonth),
		errors.Is(err, ranking.ErrInvalidYear),
		errors.Is(err, service.ErrInvalidPeriod),
		errors.Is(err, service.ErrFutureWindow),
		errors.Is(err, service.ErrFutureCompletion):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrAlreadyCompleted),
		errors.Is(err, service.ErrTaskInactive):
		status = http.StatusConflict
	case errors.Is(err, service.ErrNotCompletionOwner):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		h.log.Error(message, "path", c.FullPath(), "error", err)
	}
	c.Error(err)
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}

// household returns the household loaded by middleware.LoadHousehold
func (h *Handler) household(c *gin.Context) (*models.Household, bool) {
	household, ok := middleware.GetHousehold(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Household context not found"})
		return nil, false
	}
	return household, true
}

func parseID(c *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// HealthCheck reports whether the store is reachable
func (h *Handler) HealthCheck(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"version": h.version,
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": h.version,
	})
}

// Version returns build information
func (h *Handler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": h.version,
		"service": "octogon",
	})
}
