package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

// HouseholdStore persists households
type HouseholdStore interface {
	CreateHousehold(ctx context.Context, h *models.Household) error
	GetHousehold(ctx context.Context, id uuid.UUID) (*models.Household, error)
	UpdateHousehold(ctx context.Context, h *models.Household) error
}

// UserStore persists household members. ListUsers returns members in
// creation order, which is the leaderboard tie-break order.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, householdID, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context, householdID uuid.UUID) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, householdID, id uuid.UUID) error
}

// TaskStore persists tasks. DeleteTask deactivates the task so historical
// completions still resolve its points.
type TaskStore interface {
	CreateTask(ctx context.Context, t *models.Task) error
	GetTask(ctx context.Context, householdID, id uuid.UUID) (*models.Task, error)
	ListTasks(ctx context.Context, householdID uuid.UUID, activeOnly bool) ([]models.Task, error)
	UpdateTask(ctx context.Context, t *models.Task) error
	DeleteTask(ctx context.Context, householdID, id uuid.UUID) error
}

// CompletionFilter narrows ListCompletions. Zero fields are ignored; Since is
// inclusive and Until exclusive.
type CompletionFilter struct {
	TaskID uuid.UUID
	UserID uuid.UUID
	Since  time.Time
	Until  time.Time
}

// CompletionStore persists completions. Completions are never updated: undo
// is a delete.
type CompletionStore interface {
	CreateCompletion(ctx context.Context, c *models.Completion) error
	GetCompletion(ctx context.Context, householdID, id uuid.UUID) (*models.Completion, error)
	ListCompletions(ctx context.Context, householdID uuid.UUID, filter CompletionFilter) ([]models.Completion, error)
	DeleteCompletion(ctx context.Context, householdID, id uuid.UUID) error
}

// Store is the full persistence surface used by the services
type Store interface {
	HouseholdStore
	UserStore
	TaskStore
	CompletionStore

	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)
