package models

import "github.com/google/uuid"

// LeaderboardEntry represents a user's position on the leaderboard
type LeaderboardEntry struct {
	Rank      int       `json:"rank"`
	UserID    uuid.UUID `json:"user_id"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	ColorHex  string    `json:"color_hex"`
	Points    int       `json:"points"`
}

// LeaderboardResponse is the API response for leaderboards
type LeaderboardResponse struct {
	Period      string             `json:"period"` // "month", "year", "alltime"
	Month       *int               `json:"month,omitempty"`
	Year        *int               `json:"year,omitempty"`
	TokenName   string             `json:"token_name"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	TotalUsers  int                `json:"total_users"`
}

// HistoryResponse lists one leaderboard per selectable month
type HistoryResponse struct {
	Year      int                   `json:"year"`
	TokenName string                `json:"token_name"`
	Months    []LeaderboardResponse `json:"months"`
}

// TaskBreakdownUser is one slice of a per-task chart
type TaskBreakdownUser struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	ColorHex string    `json:"color_hex"`
	Count    int       `json:"count"`
}

// TaskBreakdown counts completions of a task per user
type TaskBreakdown struct {
	TaskID uuid.UUID           `json:"task_id"`
	Title  string              `json:"title"`
	Total  int                 `json:"total"`
	Users  []TaskBreakdownUser `json:"users"`
}

// DashboardResponse is the API response for GET /dashboard
type DashboardResponse struct {
	Period string          `json:"period"` // "month", "year", "total"
	Tasks  []TaskBreakdown `json:"tasks"`
}
