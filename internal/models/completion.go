package models

import (
	"time"

	"github.com/google/uuid"
)

// Completion records one user finishing one task.
// PointsEarned is captured at creation time; a nil value means the points
// are resolved from the task's default.
type Completion struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:text;primaryKey"`
	HouseholdID  uuid.UUID `json:"household_id" db:"household_id" gorm:"type:text;index;not null"`
	TaskID       uuid.UUID `json:"task_id" db:"task_id" gorm:"type:text;index;not null"`
	UserID       uuid.UUID `json:"user_id" db:"user_id" gorm:"type:text;index;not null"`
	PointsEarned *int      `json:"points_earned,omitempty" db:"points_earned"`
	CompletedAt  time.Time `json:"completed_at" db:"completed_at" gorm:"index;not null"`
}

// CompleteTaskRequest is the optional body for POST /tasks/:id/complete
type CompleteTaskRequest struct {
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CompletionResponse is the API response format
type CompletionResponse struct {
	ID           uuid.UUID `json:"id"`
	TaskID       uuid.UUID `json:"task_id"`
	UserID       uuid.UUID `json:"user_id"`
	PointsEarned int       `json:"points_earned"`
	CompletedAt  string    `json:"completed_at"`
}

// ToResponse converts Completion to CompletionResponse
func (c *Completion) ToResponse() CompletionResponse {
	points := 0
	if c.PointsEarned != nil {
		points = *c.PointsEarned
	}
	return CompletionResponse{
		ID:           c.ID,
		TaskID:       c.TaskID,
		UserID:       c.UserID,
		PointsEarned: points,
		CompletedAt:  c.CompletedAt.Format(time.RFC3339),
	}
}
