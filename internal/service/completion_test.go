package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/repository"
	"github.com/google/uuid"
)

func TestRecordCopiesPoints(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	alice := f.user(t, "Alice")
	dishes := f.task(t, "Dishes", 10, true)
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

	c := f.record(t, dishes, alice, now)
	if c.PointsEarned == nil || *c.PointsEarned != 10 {
		t.Fatalf("PointsEarned = %v, want 10", c.PointsEarned)
	}

	// Changing the task later does not rewrite recorded points
	dishes.DefaultPoints = 50
	if err := f.store.UpdateTask(ctx, &dishes); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	resp, err := f.leaderboards.AllTime(ctx, f.household)
	if err != nil {
		t.Fatalf("AllTime: %v", err)
	}
	if resp.Leaderboard[0].Points != 10 {
		t.Errorf("points = %d, want 10", resp.Leaderboard[0].Points)
	}
}

func TestRecordOncePerDay(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	alice := f.user(t, "Alice")
	bob := f.user(t, "Bob")
	bed := f.task(t, "Make bed", 3, false)
	trash := f.task(t, "Trash", 5, true)
	morning := time.Date(2024, time.March, 20, 8, 0, 0, 0, time.UTC)
	evening := morning.Add(12 * time.Hour)

	f.record(t, bed, alice, morning)

	_, err := f.completions.Record(ctx, f.household, bed.ID, alice.ID, evening, evening)
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("second completion same day: got %v, want ErrAlreadyCompleted", err)
	}

	// other users and other days are unaffected
	f.record(t, bed, bob, evening)
	f.record(t, bed, alice, morning.AddDate(0, 0, 1))

	// multi-per-day tasks accept repeats
	f.record(t, trash, alice, morning)
	f.record(t, trash, alice, evening)
}

func TestRecordOncePerDayUsesHouseholdTimezone(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	if _, err := time.LoadLocation("America/New_York"); err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	f.household.Timezone = "America/New_York"

	alice := f.user(t, "Alice")
	bed := f.task(t, "Make bed", 3, false)

	// 02:00 UTC and 20:00 UTC on Mar 20 are different days in New York
	early := time.Date(2024, time.March, 20, 2, 0, 0, 0, time.UTC)
	late := time.Date(2024, time.March, 20, 20, 0, 0, 0, time.UTC)
	f.record(t, bed, alice, early)
	f.record(t, bed, alice, late)

	_, err := f.completions.Record(ctx, f.household, bed.ID, alice.ID, late.Add(time.Hour), late.Add(time.Hour))
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("got %v, want ErrAlreadyCompleted", err)
	}
}

func TestRecordRejects(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	alice := f.user(t, "Alice")
	dishes := f.task(t, "Dishes", 10, true)
	retired := f.task(t, "Retired", 10, true)
	if err := f.store.DeleteTask(ctx, f.household.ID, retired.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		taskID uuid.UUID
		userID uuid.UUID
		at     time.Time
		want   error
	}{
		{"unknown task", uuid.New(), alice.ID, now, repository.ErrNotFound},
		{"unknown user", dishes.ID, uuid.New(), now, repository.ErrNotFound},
		{"inactive task", retired.ID, alice.ID, now, ErrTaskInactive},
		{"future", dishes.ID, alice.ID, now.Add(time.Hour), ErrFutureCompletion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.completions.Record(ctx, f.household, tt.taskID, tt.userID, tt.at, now)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUndo(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	alice := f.user(t, "Alice")
	bob := f.user(t, "Bob")
	dishes := f.task(t, "Dishes", 10, true)
	c := f.record(t, dishes, alice, time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC))

	if err := f.completions.Undo(ctx, f.household, bob.ID, c.ID); !errors.Is(err, ErrNotCompletionOwner) {
		t.Errorf("undo by another user: got %v", err)
	}

	before := f.cache.invalidated
	if err := f.completions.Undo(ctx, f.household, alice.ID, c.ID); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if f.cache.invalidated != before+1 {
		t.Error("undo must invalidate the cache")
	}

	if err := f.completions.Undo(ctx, f.household, alice.ID, c.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second undo: got %v, want ErrNotFound", err)
	}

	resp, _ := f.leaderboards.AllTime(ctx, f.household)
	if resp.Leaderboard[0].Points != 0 {
		t.Errorf("undone completion still counted: %+v", resp.Leaderboard)
	}
}

func TestRecent(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	alice := f.user(t, "Alice")
	dishes := f.task(t, "Dishes", 10, true)
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

	f.record(t, dishes, alice, now.AddDate(0, 0, -10))
	f.record(t, dishes, alice, now.AddDate(0, 0, -3))
	f.record(t, dishes, alice, now.Add(-time.Hour))

	recent, err := f.completions.Recent(ctx, f.household, dishes.ID, 0, now)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 completions in the default window, got %d", len(recent))
	}
	if !recent[0].CompletedAt.After(recent[1].CompletedAt) {
		t.Error("expected newest first")
	}

	wide, _ := f.completions.Recent(ctx, f.household, dishes.ID, 30, now)
	if len(wide) != 3 {
		t.Errorf("expected 3 completions in 30 days, got %d", len(wide))
	}

	if _, err := f.completions.Recent(ctx, f.household, uuid.New(), 7, now); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("unknown task: got %v", err)
	}
}

func TestHouseholdFeed(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	f.household.Timezone = "Europe/Madrid"

	alice := f.user(t, "Alice")
	bob := f.user(t, "Bob")
	dishes := f.task(t, "Dishes", 10, true)
	trash := f.task(t, "Trash", 5, true)
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, madrid)

	f.record(t, dishes, alice, now.AddDate(0, 0, -10))
	f.record(t, trash, bob, now.AddDate(0, 0, -2))
	// 23:30 UTC on the 19th is already the 20th in Madrid
	f.record(t, dishes, bob, time.Date(2024, time.March, 19, 23, 30, 0, 0, time.UTC))
	f.record(t, trash, alice, now.Add(-time.Hour))

	feed, err := f.completions.HouseholdFeed(ctx, f.household, 0, now)
	if err != nil {
		t.Fatalf("HouseholdFeed: %v", err)
	}
	if len(feed.Completions) != 3 {
		t.Fatalf("expected 3 completions across tasks in the default window, got %d", len(feed.Completions))
	}
	if feed.Completions[0].TaskID != trash.ID || feed.Completions[0].UserID != alice.ID {
		t.Errorf("expected newest first, got %+v", feed.Completions[0])
	}
	if feed.CompletedToday != 2 {
		t.Errorf("CompletedToday = %d, want 2", feed.CompletedToday)
	}

	wide, err := f.completions.HouseholdFeed(ctx, f.household, 30, now)
	if err != nil {
		t.Fatalf("HouseholdFeed: %v", err)
	}
	if len(wide.Completions) != 4 || wide.CompletedToday != 2 {
		t.Errorf("30 day feed = %d completions, %d today", len(wide.Completions), wide.CompletedToday)
	}
}
