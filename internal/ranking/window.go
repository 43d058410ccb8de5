package ranking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidMonth = errors.New("month must be between 0 (January) and 11 (December)")
	ErrInvalidYear  = errors.New("year must be between 1 and 9999")
)

// Scope selects how much of the calendar a Window covers
type Scope int

const (
	ScopeMonth Scope = iota
	ScopeYear
)

// Window restricts which completions count toward a leaderboard.
// Month uses 0 = January through 11 = December.
type Window struct {
	Scope    Scope
	Month    int
	Year     int
	Location *time.Location
}

// MonthWindow builds a single-month window. Out-of-range months are rejected
// rather than treated as all-time.
func MonthWindow(month, year int) (Window, error) {
	if month < 0 || month > 11 {
		return Window{}, fmt.Errorf("%w: got %d", ErrInvalidMonth, month)
	}
	if year < 1 || year > 9999 {
		return Window{}, fmt.Errorf("%w: got %d", ErrInvalidYear, year)
	}
	return Window{Scope: ScopeMonth, Month: month, Year: year}, nil
}

// YearWindow builds a whole-calendar-year window
func YearWindow(year int) (Window, error) {
	if year < 1 || year > 9999 {
		return Window{}, fmt.Errorf("%w: got %d", ErrInvalidYear, year)
	}
	return Window{Scope: ScopeYear, Year: year}, nil
}

// CurrentMonth returns the window containing now, evaluated in now's location
func CurrentMonth(now time.Time) Window {
	return Window{Scope: ScopeMonth, Month: int(now.Month()) - 1, Year: now.Year(), Location: now.Location()}
}

// In returns a copy of w that evaluates timestamps in loc
func (w Window) In(loc *time.Location) Window {
	w.Location = loc
	return w
}

func (w Window) location() *time.Location {
	if w.Location == nil {
		return time.UTC
	}
	return w.Location
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	local := t.In(w.location())
	if local.Year() != w.Year {
		return false
	}
	if w.Scope == ScopeYear {
		return true
	}
	return int(local.Month())-1 == w.Month
}

// Start returns the first instant of the window
func (w Window) Start() time.Time {
	month := time.January
	if w.Scope == ScopeMonth {
		month = time.Month(w.Month + 1)
	}
	return time.Date(w.Year, month, 1, 0, 0, 0, 0, w.location())
}

// End returns the first instant after the window
func (w Window) End() time.Time {
	if w.Scope == ScopeYear {
		return w.Start().AddDate(1, 0, 0)
	}
	return w.Start().AddDate(0, 1, 0)
}

// After reports whether the window begins after the month containing now
func (w Window) After(now time.Time) bool {
	current := CurrentMonth(now.In(w.location()))
	return w.Start().After(current.Start())
}

// Period names the window kind for API responses
func (w Window) Period() string {
	if w.Scope == ScopeYear {
		return "year"
	}
	return "month"
}

func (w Window) String() string {
	if w.Scope == ScopeYear {
		return fmt.Sprintf("%04d", w.Year)
	}
	return fmt.Sprintf("%04d-%02d", w.Year, w.Month+1)
}
