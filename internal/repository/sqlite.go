package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SQLiteStore implements Store on gorm for single-file local mode.
// Timestamps are written in UTC so that text comparison orders them.
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func gormNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func affected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) CreateHousehold(ctx context.Context, h *models.Household) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(h).Error
}

func (s *SQLiteStore) GetHousehold(ctx context.Context, id uuid.UUID) (*models.Household, error) {
	var h models.Household
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&h).Error; err != nil {
		return nil, gormNotFound(err)
	}
	return &h, nil
}

func (s *SQLiteStore) UpdateHousehold(ctx context.Context, h *models.Household) error {
	h.UpdatedAt = time.Now().UTC()
	return affected(s.db.WithContext(ctx).Model(&models.Household{}).
		Where("id = ?", h.ID).
		Updates(map[string]interface{}{
			"name":        h.Name,
			"token_name":  h.TokenName,
			"theme_color": h.ThemeColor,
			"timezone":    h.Timezone,
			"updated_at":  h.UpdatedAt,
		}))
}

func (s *SQLiteStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *SQLiteStore) GetUser(ctx context.Context, householdID, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("household_id = ? AND id = ?", householdID, id).First(&u).Error
	if err != nil {
		return nil, gormNotFound(err)
	}
	return &u, nil
}

// ListUsers orders by rowid after created_at so that users created within
// the same clock tick keep insertion order.
func (s *SQLiteStore) ListUsers(ctx context.Context, householdID uuid.UUID) ([]models.User, error) {
	users := []models.User{}
	err := s.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("created_at ASC, rowid ASC").
		Find(&users).Error
	return users, err
}

func (s *SQLiteStore) UpdateUser(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now().UTC()
	return affected(s.db.WithContext(ctx).Model(&models.User{}).
		Where("household_id = ? AND id = ?", u.HouseholdID, u.ID).
		Updates(map[string]interface{}{
			"full_name":  u.FullName,
			"email":      u.Email,
			"avatar_url": u.AvatarURL,
			"color_hex":  u.ColorHex,
			"theme":      u.Theme,
			"updated_at": u.UpdatedAt,
		}))
}

func (s *SQLiteStore) DeleteUser(ctx context.Context, householdID, id uuid.UUID) error {
	return affected(s.db.WithContext(ctx).
		Where("household_id = ? AND id = ?", householdID, id).
		Delete(&models.User{}))
}

func (s *SQLiteStore) CreateTask(ctx context.Context, t *models.Task) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *SQLiteStore) GetTask(ctx context.Context, householdID, id uuid.UUID) (*models.Task, error) {
	var t models.Task
	err := s.db.WithContext(ctx).Where("household_id = ? AND id = ?", householdID, id).First(&t).Error
	if err != nil {
		return nil, gormNotFound(err)
	}
	return &t, nil
}

func (s *SQLiteStore) ListTasks(ctx context.Context, householdID uuid.UUID, activeOnly bool) ([]models.Task, error) {
	q := s.db.WithContext(ctx).Where("household_id = ?", householdID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	tasks := []models.Task{}
	err := q.Order("title ASC, id ASC").Find(&tasks).Error
	return tasks, err
}

func (s *SQLiteStore) UpdateTask(ctx context.Context, t *models.Task) error {
	t.UpdatedAt = time.Now().UTC()
	return affected(s.db.WithContext(ctx).Model(&models.Task{}).
		Where("household_id = ? AND id = ?", t.HouseholdID, t.ID).
		Updates(map[string]interface{}{
			"title":                  t.Title,
			"description":            t.Description,
			"default_points":         t.DefaultPoints,
			"allow_multiple_per_day": t.AllowMultiplePerDay,
			"is_active":              t.IsActive,
			"updated_at":             t.UpdatedAt,
		}))
}

func (s *SQLiteStore) DeleteTask(ctx context.Context, householdID, id uuid.UUID) error {
	return affected(s.db.WithContext(ctx).Model(&models.Task{}).
		Where("household_id = ? AND id = ?", householdID, id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		}))
}

func (s *SQLiteStore) CreateCompletion(ctx context.Context, c *models.Completion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CompletedAt = c.CompletedAt.UTC()
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *SQLiteStore) GetCompletion(ctx context.Context, householdID, id uuid.UUID) (*models.Completion, error) {
	var c models.Completion
	err := s.db.WithContext(ctx).Where("household_id = ? AND id = ?", householdID, id).First(&c).Error
	if err != nil {
		return nil, gormNotFound(err)
	}
	return &c, nil
}

func (s *SQLiteStore) ListCompletions(ctx context.Context, householdID uuid.UUID, filter CompletionFilter) ([]models.Completion, error) {
	q := s.db.WithContext(ctx).Where("household_id = ?", householdID)
	if filter.TaskID != uuid.Nil {
		q = q.Where("task_id = ?", filter.TaskID)
	}
	if filter.UserID != uuid.Nil {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if !filter.Since.IsZero() {
		q = q.Where("completed_at >= ?", filter.Since.UTC())
	}
	if !filter.Until.IsZero() {
		q = q.Where("completed_at < ?", filter.Until.UTC())
	}

	completions := []models.Completion{}
	err := q.Order("completed_at DESC, id ASC").Find(&completions).Error
	return completions, err
}

func (s *SQLiteStore) DeleteCompletion(ctx context.Context, householdID, id uuid.UUID) error {
	return affected(s.db.WithContext(ctx).
		Where("household_id = ? AND id = ?", householdID, id).
		Delete(&models.Completion{}))
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
