package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTokenName is the points label used when a household has not chosen one
const DefaultTokenName = "Puntos"

// Household is the tenancy boundary grouping users, tasks and completions
type Household struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:text;primaryKey"`
	Name       string    `json:"name" db:"name" gorm:"not null"` // Display name (e.g., "Mi Hogar")
	TokenName  string    `json:"token_name" db:"token_name"`     // Points unit label (e.g., "Puntos", "Stars")
	ThemeColor string    `json:"theme_color" db:"theme_color"`   // Primary color for household branding
	Timezone   string    `json:"timezone" db:"timezone"`         // IANA zone used to bucket completions by day/month
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Location returns the household time zone, falling back to UTC
func (h *Household) Location() *time.Location {
	if h == nil || h.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(h.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Label returns the token name, falling back to DefaultTokenName
func (h *Household) Label() string {
	if h == nil || h.TokenName == "" {
		return DefaultTokenName
	}
	return h.TokenName
}

// HouseholdCreateRequest is the request body for creating a household
type HouseholdCreateRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	TokenName  string `json:"token_name" binding:"omitempty,max=30"`
	ThemeColor string `json:"theme_color" binding:"omitempty,hexcolor"`
	Timezone   string `json:"timezone" binding:"omitempty,timezone"`
}

// NewHousehold builds a household from a create request, filling defaults
func NewHousehold(req HouseholdCreateRequest) *Household {
	h := &Household{
		Name:       req.Name,
		TokenName:  req.TokenName,
		ThemeColor: req.ThemeColor,
		Timezone:   req.Timezone,
	}
	if h.TokenName == "" {
		h.TokenName = DefaultTokenName
	}
	if h.Timezone == "" {
		h.Timezone = "UTC"
	}
	return h
}

// HouseholdUpdateRequest is the request body for PATCH /api/households/:householdID
type HouseholdUpdateRequest struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	TokenName  *string `json:"token_name,omitempty" binding:"omitempty,min=1,max=30"`
	ThemeColor *string `json:"theme_color,omitempty" binding:"omitempty,hexcolor"`
	Timezone   *string `json:"timezone,omitempty" binding:"omitempty,timezone"`
}

// Apply copies the set fields onto h
func (r *HouseholdUpdateRequest) Apply(h *Household) {
	if r.Name != nil {
		h.Name = *r.Name
	}
	if r.TokenName != nil {
		h.TokenName = *r.TokenName
	}
	if r.ThemeColor != nil {
		h.ThemeColor = *r.ThemeColor
	}
	if r.Timezone != nil {
		h.Timezone = *r.Timezone
	}
}
