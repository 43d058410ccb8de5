package models

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a chore that earns points when completed
type Task struct {
	ID                  uuid.UUID `json:"id" db:"id" gorm:"type:text;primaryKey"`
	HouseholdID         uuid.UUID `json:"household_id" db:"household_id" gorm:"type:text;index;not null"`
	Title               string    `json:"title" db:"title" gorm:"not null"`
	Description         *string   `json:"description,omitempty" db:"description"`
	DefaultPoints       int       `json:"default_points" db:"default_points"`
	AllowMultiplePerDay bool      `json:"allow_multiple_per_day" db:"allow_multiple_per_day"`
	IsActive            bool      `json:"is_active" db:"is_active"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// TaskCreateRequest is the request body for POST /tasks
type TaskCreateRequest struct {
	Title               string  `json:"title" binding:"required,max=120"`
	Description         *string `json:"description,omitempty"`
	DefaultPoints       int     `json:"default_points" binding:"gte=0"`
	AllowMultiplePerDay bool    `json:"allow_multiple_per_day"`
}

// NewTask builds an active task from a create request
func NewTask(householdID uuid.UUID, req TaskCreateRequest) *Task {
	return &Task{
		HouseholdID:         householdID,
		Title:               req.Title,
		Description:         req.Description,
		DefaultPoints:       req.DefaultPoints,
		AllowMultiplePerDay: req.AllowMultiplePerDay,
		IsActive:            true,
	}
}

// TaskUpdateRequest is the request body for PATCH /tasks/:id
type TaskUpdateRequest struct {
	Title               *string `json:"title,omitempty" binding:"omitempty,min=1,max=120"`
	Description         *string `json:"description,omitempty"`
	DefaultPoints       *int    `json:"default_points,omitempty" binding:"omitempty,gte=0"`
	AllowMultiplePerDay *bool   `json:"allow_multiple_per_day,omitempty"`
	IsActive            *bool   `json:"is_active,omitempty"`
}

// Apply copies the set fields onto t. Changing DefaultPoints never rewrites
// points already recorded on completions.
func (r *TaskUpdateRequest) Apply(t *Task) {
	if r.Title != nil {
		t.Title = *r.Title
	}
	if r.Description != nil {
		t.Description = r.Description
	}
	if r.DefaultPoints != nil {
		t.DefaultPoints = *r.DefaultPoints
	}
	if r.AllowMultiplePerDay != nil {
		t.AllowMultiplePerDay = *r.AllowMultiplePerDay
	}
	if r.IsActive != nil {
		t.IsActive = *r.IsActive
	}
}
