package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a household member
type User struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:text;primaryKey"`
	HouseholdID uuid.UUID `json:"household_id" db:"household_id" gorm:"type:text;index;not null"`
	FullName    string    `json:"full_name" db:"full_name" gorm:"not null"`
	Email       *string   `json:"email,omitempty" db:"email"`
	AvatarURL   string    `json:"avatar_url" db:"avatar_url"`
	ColorHex    string    `json:"color_hex" db:"color_hex"` // Avatar and chart color
	Theme       string    `json:"theme" db:"theme"`         // "cyber", "light", "octogon"
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// UserCreateRequest is the request body for POST /users
type UserCreateRequest struct {
	FullName  string  `json:"full_name" binding:"required,max=100"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	AvatarURL string  `json:"avatar_url"`
	ColorHex  string  `json:"color_hex" binding:"omitempty,hexcolor"`
	Theme     string  `json:"theme" binding:"omitempty,oneof=cyber light octogon"`
}

// DefaultTheme is applied when a user does not pick one
const DefaultTheme = "octogon"

// NewUser builds a household member from a create request
func NewUser(householdID uuid.UUID, req UserCreateRequest) *User {
	u := &User{
		HouseholdID: householdID,
		FullName:    req.FullName,
		Email:       req.Email,
		AvatarURL:   req.AvatarURL,
		ColorHex:    req.ColorHex,
		Theme:       req.Theme,
	}
	if u.Theme == "" {
		u.Theme = DefaultTheme
	}
	return u
}

// UserUpdateRequest is the request body for PATCH /users/:id
type UserUpdateRequest struct {
	FullName  *string `json:"full_name,omitempty" binding:"omitempty,min=1,max=100"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	ColorHex  *string `json:"color_hex,omitempty" binding:"omitempty,hexcolor"`
	Theme     *string `json:"theme,omitempty" binding:"omitempty,oneof=cyber light octogon"`
}

// Apply copies the set fields onto u
func (r *UserUpdateRequest) Apply(u *User) {
	if r.FullName != nil {
		u.FullName = *r.FullName
	}
	if r.Email != nil {
		u.Email = r.Email
	}
	if r.AvatarURL != nil {
		u.AvatarURL = *r.AvatarURL
	}
	if r.ColorHex != nil {
		u.ColorHex = *r.ColorHex
	}
	if r.Theme != nil {
		u.Theme = *r.Theme
	}
}
