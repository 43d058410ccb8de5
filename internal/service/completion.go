package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/logger"
	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/Mikemeister8/octogon-home-app/internal/repository"
	"github.com/google/uuid"
)

// DefaultRecentDays is the window of the recent completions feed
const DefaultRecentDays = 7

// clockSkew is how far ahead of the server clock a client timestamp may be
const clockSkew = time.Minute

// CompletionService records and undoes task completions
type CompletionService struct {
	store        repository.Store
	leaderboards *LeaderboardService
	log          *logger.Logger
}

func NewCompletionService(store repository.Store, leaderboards *LeaderboardService, log *logger.Logger) *CompletionService {
	return &CompletionService{store: store, leaderboards: leaderboards, log: log}
}

// Record stores a completion of taskID by userID at the given time. The task
// must be active. Tasks that do not allow multiple completions per day are
// rejected with ErrAlreadyCompleted when the user already completed them on
// the same calendar day in the household time zone. The task's current
// default points are copied onto the completion.
func (s *CompletionService) Record(ctx context.Context, h *models.Household, taskID, userID uuid.UUID, at, now time.Time) (*models.Completion, error) {
	if at.IsZero() {
		at = now
	}
	if at.After(now.Add(clockSkew)) {
		return nil, ErrFutureCompletion
	}

	task, err := s.store.GetTask(ctx, h.ID, taskID)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", taskID, err)
	}
	if !task.IsActive {
		return nil, ErrTaskInactive
	}

	if _, err := s.store.GetUser(ctx, h.ID, userID); err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, err)
	}

	if !task.AllowMultiplePerDay {
		start, end := dayBounds(at, h.Location())
		existing, err := s.store.ListCompletions(ctx, h.ID, repository.CompletionFilter{
			TaskID: taskID,
			UserID: userID,
			Since:  start,
			Until:  end,
		})
		if err != nil {
			return nil, fmt.Errorf("check daily completions: %w", err)
		}
		if len(existing) > 0 {
			return nil, ErrAlreadyCompleted
		}
	}

	points := task.DefaultPoints
	completion := &models.Completion{
		HouseholdID:  h.ID,
		TaskID:       taskID,
		UserID:       userID,
		PointsEarned: &points,
		CompletedAt:  at.UTC().Truncate(time.Microsecond),
	}
	if err := s.store.CreateCompletion(ctx, completion); err != nil {
		return nil, fmt.Errorf("create completion: %w", err)
	}

	s.leaderboards.Invalidate(ctx, h)
	s.log.Info("task completed",
		"household_id", h.ID,
		"task_id", taskID,
		"user_id", userID,
		"points", points,
	)
	return completion, nil
}

// Undo deletes a completion recorded by actorID
func (s *CompletionService) Undo(ctx context.Context, h *models.Household, actorID, completionID uuid.UUID) error {
	completion, err := s.store.GetCompletion(ctx, h.ID, completionID)
	if err != nil {
		return fmt.Errorf("completion %s: %w", completionID, err)
	}
	if completion.UserID != actorID {
		return ErrNotCompletionOwner
	}

	if err := s.store.DeleteCompletion(ctx, h.ID, completionID); err != nil {
		return fmt.Errorf("delete completion: %w", err)
	}

	s.leaderboards.Invalidate(ctx, h)
	s.log.Info("completion undone", "household_id", h.ID, "completion_id", completionID, "user_id", actorID)
	return nil
}

// Recent lists the completions of a task in the last days days, newest
// first. days <= 0 uses DefaultRecentDays.
func (s *CompletionService) Recent(ctx context.Context, h *models.Household, taskID uuid.UUID, days int, now time.Time) ([]models.Completion, error) {
	if days <= 0 {
		days = DefaultRecentDays
	}

	if _, err := s.store.GetTask(ctx, h.ID, taskID); err != nil {
		return nil, fmt.Errorf("task %s: %w", taskID, err)
	}

	return s.store.ListCompletions(ctx, h.ID, repository.CompletionFilter{
		TaskID: taskID,
		Since:  now.AddDate(0, 0, -days),
	})
}

// Feed is the household's recent completions feed
type Feed struct {
	Completions    []models.Completion
	CompletedToday int
}

// HouseholdFeed lists every completion of the household in the last days days,
// newest first, and counts those on the current calendar day in the
// household time zone. days <= 0 uses DefaultRecentDays.
func (s *CompletionService) HouseholdFeed(ctx context.Context, h *models.Household, days int, now time.Time) (*Feed, error) {
	if days <= 0 {
		days = DefaultRecentDays
	}

	completions, err := s.store.ListCompletions(ctx, h.ID, repository.CompletionFilter{
		Since: now.AddDate(0, 0, -days),
	})
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}

	start, end := dayBounds(now, h.Location())
	feed := &Feed{Completions: completions}
	for _, c := range completions {
		if !c.CompletedAt.Before(start) && c.CompletedAt.Before(end) {
			feed.CompletedToday++
		}
	}
	return feed, nil
}

// dayBounds returns the calendar day containing t in loc as [start, end)
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
