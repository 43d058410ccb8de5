package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on a pgx connection pool
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// CreateHousehold inserts a new household
func (r *PostgresStore) CreateHousehold(ctx context.Context, h *models.Household) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}

	query := `
		INSERT INTO households (id, name, token_name, theme_color, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		h.ID, h.Name, h.TokenName, h.ThemeColor, h.Timezone,
	).Scan(&h.CreatedAt, &h.UpdatedAt)
}

// GetHousehold retrieves a household by ID
func (r *PostgresStore) GetHousehold(ctx context.Context, id uuid.UUID) (*models.Household, error) {
	query := `
		SELECT id, name, token_name, theme_color, timezone, created_at, updated_at
		FROM households
		WHERE id = $1
	`

	var h models.Household
	err := r.db.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.Name, &h.TokenName, &h.ThemeColor, &h.Timezone, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}

	return &h, nil
}

// UpdateHousehold updates household settings
func (r *PostgresStore) UpdateHousehold(ctx context.Context, h *models.Household) error {
	query := `
		UPDATE households
		SET name = $1, token_name = $2, theme_color = $3, timezone = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, h.Name, h.TokenName, h.ThemeColor, h.Timezone, h.ID).Scan(&h.UpdatedAt)
	return notFound(err)
}

const userColumns = `id, household_id, full_name, email, avatar_url, color_hex, theme, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.HouseholdID, &u.FullName, &u.Email, &u.AvatarURL,
		&u.ColorHex, &u.Theme, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a household member
func (r *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	query := `
		INSERT INTO users (id, household_id, full_name, email, avatar_url, color_hex, theme, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		u.ID, u.HouseholdID, u.FullName, u.Email, u.AvatarURL, u.ColorHex, u.Theme,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
}

// GetUser retrieves a member of the household
func (r *PostgresStore) GetUser(ctx context.Context, householdID, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE household_id = $1 AND id = $2`

	u, err := scanUser(r.db.QueryRow(ctx, query, householdID, id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// ListUsers returns the household's members in creation order
func (r *PostgresStore) ListUsers(ctx context.Context, householdID uuid.UUID) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE household_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}

	return users, rows.Err()
}

// UpdateUser updates a member's profile
func (r *PostgresStore) UpdateUser(ctx context.Context, u *models.User) error {
	query := `
		UPDATE users
		SET full_name = $1, email = $2, avatar_url = $3, color_hex = $4, theme = $5, updated_at = NOW()
		WHERE household_id = $6 AND id = $7
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		u.FullName, u.Email, u.AvatarURL, u.ColorHex, u.Theme, u.HouseholdID, u.ID,
	).Scan(&u.UpdatedAt)
	return notFound(err)
}

// DeleteUser removes a member. Their completions are kept.
func (r *PostgresStore) DeleteUser(ctx context.Context, householdID, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE household_id = $1 AND id = $2`, householdID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const taskColumns = `id, household_id, title, description, default_points, allow_multiple_per_day, is_active, created_at, updated_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID, &t.HouseholdID, &t.Title, &t.Description, &t.DefaultPoints,
		&t.AllowMultiplePerDay, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTask inserts a task
func (r *PostgresStore) CreateTask(ctx context.Context, t *models.Task) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	query := `
		INSERT INTO tasks (id, household_id, title, description, default_points, allow_multiple_per_day, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		t.ID, t.HouseholdID, t.Title, t.Description, t.DefaultPoints, t.AllowMultiplePerDay, t.IsActive,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// GetTask retrieves a task, active or not
func (r *PostgresStore) GetTask(ctx context.Context, householdID, id uuid.UUID) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE household_id = $1 AND id = $2`

	t, err := scanTask(r.db.QueryRow(ctx, query, householdID, id))
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// ListTasks returns the household's tasks ordered by title
func (r *PostgresStore) ListTasks(ctx context.Context, householdID uuid.UUID, activeOnly bool) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE household_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY title ASC, id ASC`

	rows, err := r.db.Query(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}

	return tasks, rows.Err()
}

// UpdateTask updates a task definition
func (r *PostgresStore) UpdateTask(ctx context.Context, t *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, default_points = $3, allow_multiple_per_day = $4,
			is_active = $5, updated_at = NOW()
		WHERE household_id = $6 AND id = $7
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		t.Title, t.Description, t.DefaultPoints, t.AllowMultiplePerDay, t.IsActive, t.HouseholdID, t.ID,
	).Scan(&t.UpdatedAt)
	return notFound(err)
}

// DeleteTask deactivates a task
func (r *PostgresStore) DeleteTask(ctx context.Context, householdID, id uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`UPDATE tasks SET is_active = false, updated_at = NOW() WHERE household_id = $1 AND id = $2`,
		householdID, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateCompletion records a completion
func (r *PostgresStore) CreateCompletion(ctx context.Context, c *models.Completion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	query := `
		INSERT INTO completions (id, household_id, task_id, user_id, points_earned, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query, c.ID, c.HouseholdID, c.TaskID, c.UserID, c.PointsEarned, c.CompletedAt)
	return err
}

const completionColumns = `id, household_id, task_id, user_id, points_earned, completed_at`

func scanCompletion(row pgx.Row) (*models.Completion, error) {
	var c models.Completion
	if err := row.Scan(&c.ID, &c.HouseholdID, &c.TaskID, &c.UserID, &c.PointsEarned, &c.CompletedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCompletion retrieves a completion
func (r *PostgresStore) GetCompletion(ctx context.Context, householdID, id uuid.UUID) (*models.Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM completions WHERE household_id = $1 AND id = $2`

	c, err := scanCompletion(r.db.QueryRow(ctx, query, householdID, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// ListCompletions returns completions newest first
func (r *PostgresStore) ListCompletions(ctx context.Context, householdID uuid.UUID, filter CompletionFilter) ([]models.Completion, error) {
	conditions := []string{"household_id = $1"}
	params := []interface{}{householdID}

	add := func(cond string, value interface{}) {
		params = append(params, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(params)))
	}
	if filter.TaskID != uuid.Nil {
		add("task_id = $%d", filter.TaskID)
	}
	if filter.UserID != uuid.Nil {
		add("user_id = $%d", filter.UserID)
	}
	if !filter.Since.IsZero() {
		add("completed_at >= $%d", filter.Since)
	}
	if !filter.Until.IsZero() {
		add("completed_at < $%d", filter.Until)
	}

	query := `SELECT ` + completionColumns + ` FROM completions WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY completed_at DESC, id ASC`

	rows, err := r.db.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	completions := []models.Completion{}
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		completions = append(completions, *c)
	}

	return completions, rows.Err()
}

// DeleteCompletion removes a completion (undo)
func (r *PostgresStore) DeleteCompletion(ctx context.Context, householdID, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM completions WHERE household_id = $1 AND id = $2`, householdID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks if the database is reachable
func (r *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.db.Ping(ctx)
}

// Close closes the connection pool
func (r *PostgresStore) Close() error {
	r.db.Close()
	return nil
}
