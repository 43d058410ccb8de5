package service

import "errors"

var (
	ErrFutureWindow       = errors.New("leaderboard window is after the current month")
	ErrInvalidPeriod      = errors.New("period must be one of month, year, total")
	ErrTaskInactive       = errors.New("task is not active")
	ErrAlreadyCompleted   = errors.New("task already completed today")
	ErrFutureCompletion   = errors.New("completion time is in the future")
	ErrNotCompletionOwner = errors.New("completion belongs to another user")
)
