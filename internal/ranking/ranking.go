// Package ranking aggregates completion points into leaderboards.
//
// Every function here is pure: inputs are read-only snapshots and results
// depend only on the arguments, so calls are safe from any goroutine.
package ranking

import (
	"sort"

	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/google/uuid"
)

// Standing is one leaderboard row
type Standing struct {
	Rank   int
	User   models.User
	Points int
}

// Rank totals points per user within window (nil means all-time) and returns
// one Standing per distinct user, highest points first.
//
// Users keep their input order when tied. A repeated user id is counted once,
// at its first position. Completions for users not in users are skipped.
func Rank(users []models.User, completions []models.Completion, resolve PointsResolver, window *Window) []Standing {
	if resolve == nil {
		resolve = PreferInline(nil)
	}

	index := make(map[uuid.UUID]int, len(users))
	standings := make([]Standing, 0, len(users))
	for _, u := range users {
		if _, dup := index[u.ID]; dup {
			continue
		}
		index[u.ID] = len(standings)
		standings = append(standings, Standing{User: u})
	}

	for _, c := range completions {
		if window != nil && !window.Contains(c.CompletedAt) {
			continue
		}
		i, ok := index[c.UserID]
		if !ok {
			continue
		}
		standings[i].Points += resolve(c)
	}

	sort.SliceStable(standings, func(a, b int) bool {
		return standings[a].Points > standings[b].Points
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings
}
