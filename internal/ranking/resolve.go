package ranking

import (
	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/google/uuid"
)

// PointsResolver returns the points a completion is worth.
// It is the only place the engine learns about point storage.
type PointsResolver func(c models.Completion) int

// InlinePoints credits the points stored on the completion itself
func InlinePoints(c models.Completion) int {
	if c.PointsEarned == nil {
		return 0
	}
	return *c.PointsEarned
}

// TaskPoints credits the referenced task's default points. Completions of
// unknown tasks are worth zero.
func TaskPoints(tasks []models.Task) PointsResolver {
	points := make(map[uuid.UUID]int, len(tasks))
	for _, t := range tasks {
		if _, seen := points[t.ID]; !seen {
			points[t.ID] = t.DefaultPoints
		}
	}
	return func(c models.Completion) int {
		return points[c.TaskID]
	}
}

// PreferInline uses the completion's own points when recorded, falling back
// to the task's default points otherwise.
func PreferInline(tasks []models.Task) PointsResolver {
	byTask := TaskPoints(tasks)
	return func(c models.Completion) int {
		if c.PointsEarned != nil {
			return *c.PointsEarned
		}
		return byTask(c)
	}
}
