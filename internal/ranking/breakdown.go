package ranking

import (
	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/google/uuid"
)

// UserCount is how many times a user completed a task
type UserCount struct {
	User  models.User
	Count int
}

// Breakdown summarizes the completions of a single task
type Breakdown struct {
	Task  models.Task
	Total int
	Users []UserCount
}

// TaskBreakdown counts completions per task and per user within window (nil
// means all-time). Tasks keep their input order; users with no completions of
// a task are left out of that task's Users. Total includes completions by
// users no longer in the household.
func TaskBreakdown(tasks []models.Task, users []models.User, completions []models.Completion, window *Window) []Breakdown {
	type key struct {
		task uuid.UUID
		user uuid.UUID
	}
	totals := make(map[uuid.UUID]int, len(tasks))
	counts := make(map[key]int)
	for _, c := range completions {
		if window != nil && !window.Contains(c.CompletedAt) {
			continue
		}
		totals[c.TaskID]++
		counts[key{c.TaskID, c.UserID}]++
	}

	breakdowns := make([]Breakdown, 0, len(tasks))
	for _, t := range tasks {
		b := Breakdown{Task: t, Total: totals[t.ID], Users: []UserCount{}}
		seen := make(map[uuid.UUID]bool, len(users))
		for _, u := range users {
			if seen[u.ID] {
				continue
			}
			seen[u.ID] = true
			if n := counts[key{t.ID, u.ID}]; n > 0 {
				b.Users = append(b.Users, UserCount{User: u, Count: n})
			}
		}
		breakdowns = append(breakdowns, b)
	}
	return breakdowns
}
