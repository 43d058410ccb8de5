package ranking

import (
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/models"
)

// MonthStandings is the leaderboard for one calendar month
type MonthStandings struct {
	Window    Window
	Standings []Standing
}

// Months lists the month windows from the month containing from through the
// month containing to, oldest first. It returns nil when from is after to.
func Months(from, to time.Time, loc *time.Location) []Window {
	if loc == nil {
		loc = time.UTC
	}
	first := CurrentMonth(from.In(loc)).Start()
	last := CurrentMonth(to.In(loc)).Start()
	if first.After(last) {
		return nil
	}

	var windows []Window
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		windows = append(windows, CurrentMonth(m))
	}
	return windows
}

// History ranks every month between from and now. Months after the one
// containing now are never produced.
func History(users []models.User, completions []models.Completion, resolve PointsResolver, from, now time.Time, loc *time.Location) []MonthStandings {
	windows := Months(from, now, loc)
	history := make([]MonthStandings, 0, len(windows))
	for _, w := range windows {
		w := w
		history = append(history, MonthStandings{
			Window:    w,
			Standings: Rank(users, completions, resolve, &w),
		})
	}
	return history
}
