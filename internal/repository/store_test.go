package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/database"
	"github.com/Mikemeister8/octogon-home-app/internal/logger"
	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/google/uuid"
)

func setupSQLite(t *testing.T) Store {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	store := NewSQLiteStore(db)
	t.Cleanup(func() { store.Close() })
	return store
}

func setupPostgres(t *testing.T) Store {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, dsn, 4, 1)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if _, err := database.RunMigrations(ctx, pool, logger.Nop()); err != nil {
		pool.Close()
		t.Fatalf("failed to migrate: %v", err)
	}
	store := NewPostgresStore(pool)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, setupSQLite)
}

func TestPostgresStore(t *testing.T) {
	runStoreTests(t, setupPostgres)
}

func runStoreTests(t *testing.T, setup func(t *testing.T) Store) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s Store)
	}{
		{"Households", testHouseholds},
		{"Users", testUsers},
		{"Tasks", testTasks},
		{"Completions", testCompletions},
		{"HouseholdIsolation", testHouseholdIsolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, setup(t))
		})
	}
}

func newHousehold(t *testing.T, s Store) *models.Household {
	t.Helper()
	h := &models.Household{Name: "Casa", TokenName: models.DefaultTokenName, Timezone: "UTC"}
	if err := s.CreateHousehold(context.Background(), h); err != nil {
		t.Fatalf("CreateHousehold: %v", err)
	}
	return h
}

func testHouseholds(t *testing.T, s Store) {
	ctx := context.Background()
	h := newHousehold(t, s)

	got, err := s.GetHousehold(ctx, h.ID)
	if err != nil {
		t.Fatalf("GetHousehold: %v", err)
	}
	if got.Name != "Casa" || got.TokenName != "Puntos" {
		t.Errorf("unexpected household %+v", got)
	}

	got.TokenName = "Stars"
	got.Timezone = "Europe/Madrid"
	if err := s.UpdateHousehold(ctx, got); err != nil {
		t.Fatalf("UpdateHousehold: %v", err)
	}
	got, _ = s.GetHousehold(ctx, h.ID)
	if got.TokenName != "Stars" || got.Timezone != "Europe/Madrid" {
		t.Errorf("update not persisted: %+v", got)
	}

	if _, err := s.GetHousehold(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.UpdateHousehold(ctx, &models.Household{ID: uuid.New(), Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on update, got %v", err)
	}
}

func testUsers(t *testing.T, s Store) {
	ctx := context.Background()
	h := newHousehold(t, s)

	names := []string{"Carol", "Alice", "Bob"}
	for _, name := range names {
		if err := s.CreateUser(ctx, &models.User{HouseholdID: h.ID, FullName: name, Theme: "octogon"}); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}

	users, err := s.ListUsers(ctx, h.ID)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != len(names) {
		t.Fatalf("expected %d users, got %d", len(names), len(users))
	}
	for i, name := range names {
		if users[i].FullName != name {
			t.Errorf("users[%d] = %s, want %s (creation order)", i, users[i].FullName, name)
		}
	}

	u := users[1]
	email := "alice@example.com"
	u.Email = &email
	u.ColorHex = "#ff00ff"
	if err := s.UpdateUser(ctx, &u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	got, err := s.GetUser(ctx, h.ID, u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Email == nil || *got.Email != email || got.ColorHex != "#ff00ff" {
		t.Errorf("update not persisted: %+v", got)
	}

	if err := s.DeleteUser(ctx, h.ID, u.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := s.GetUser(ctx, h.ID, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteUser(ctx, h.ID, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func testTasks(t *testing.T, s Store) {
	ctx := context.Background()
	h := newHousehold(t, s)

	dishes := &models.Task{HouseholdID: h.ID, Title: "Dishes", DefaultPoints: 10, IsActive: true}
	trash := &models.Task{HouseholdID: h.ID, Title: "Trash", DefaultPoints: 5, IsActive: true, AllowMultiplePerDay: true}
	for _, task := range []*models.Task{trash, dishes} {
		if err := s.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}

	tasks, err := s.ListTasks(ctx, h.ID, true)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Title != "Dishes" {
		t.Fatalf("expected tasks ordered by title, got %+v", tasks)
	}

	dishes.DefaultPoints = 15
	if err := s.UpdateTask(ctx, dishes); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	if err := s.DeleteTask(ctx, h.ID, trash.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	active, _ := s.ListTasks(ctx, h.ID, true)
	if len(active) != 1 || active[0].DefaultPoints != 15 {
		t.Errorf("expected only the updated Dishes task, got %+v", active)
	}

	all, _ := s.ListTasks(ctx, h.ID, false)
	if len(all) != 2 {
		t.Errorf("soft-deleted task should still be listed, got %d", len(all))
	}

	got, err := s.GetTask(ctx, h.ID, trash.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.IsActive {
		t.Error("deleted task should be inactive")
	}
}

func testCompletions(t *testing.T, s Store) {
	ctx := context.Background()
	h := newHousehold(t, s)
	userA, userB := uuid.New(), uuid.New()
	taskA, taskB := uuid.New(), uuid.New()
	points := 10

	base := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	records := []models.Completion{
		{HouseholdID: h.ID, TaskID: taskA, UserID: userA, PointsEarned: &points, CompletedAt: base},
		{HouseholdID: h.ID, TaskID: taskA, UserID: userB, CompletedAt: base.Add(time.Hour)},
		{HouseholdID: h.ID, TaskID: taskB, UserID: userA, CompletedAt: base.Add(48 * time.Hour)},
	}
	for i := range records {
		if err := s.CreateCompletion(ctx, &records[i]); err != nil {
			t.Fatalf("CreateCompletion: %v", err)
		}
	}

	all, err := s.ListCompletions(ctx, h.ID, CompletionFilter{})
	if err != nil {
		t.Fatalf("ListCompletions: %v", err)
	}
	if len(all) != 3 || all[0].TaskID != taskB {
		t.Fatalf("expected 3 completions newest first, got %+v", all)
	}

	tests := []struct {
		name   string
		filter CompletionFilter
		want   int
	}{
		{"by task", CompletionFilter{TaskID: taskA}, 2},
		{"by user", CompletionFilter{UserID: userA}, 2},
		{"task and user", CompletionFilter{TaskID: taskA, UserID: userB}, 1},
		{"since inclusive", CompletionFilter{Since: base.Add(time.Hour)}, 2},
		{"until exclusive", CompletionFilter{Until: base.Add(time.Hour)}, 1},
		{"day bounds", CompletionFilter{Since: base.Add(-12 * time.Hour), Until: base.Add(12 * time.Hour)}, 2},
		{"non-UTC bounds", CompletionFilter{Since: base.In(time.FixedZone("X", 3600))}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListCompletions(ctx, h.ID, tt.filter)
			if err != nil {
				t.Fatalf("ListCompletions: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d completions, want %d", len(got), tt.want)
			}
		})
	}

	got, err := s.GetCompletion(ctx, h.ID, records[0].ID)
	if err != nil {
		t.Fatalf("GetCompletion: %v", err)
	}
	if got.PointsEarned == nil || *got.PointsEarned != 10 {
		t.Errorf("expected inline points 10, got %v", got.PointsEarned)
	}
	if !got.CompletedAt.Equal(base) {
		t.Errorf("completed_at = %v, want %v", got.CompletedAt, base)
	}

	if err := s.DeleteCompletion(ctx, h.ID, records[0].ID); err != nil {
		t.Fatalf("DeleteCompletion: %v", err)
	}
	if err := s.DeleteCompletion(ctx, h.ID, records[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func testHouseholdIsolation(t *testing.T, s Store) {
	ctx := context.Background()
	mine := newHousehold(t, s)
	theirs := newHousehold(t, s)

	u := &models.User{HouseholdID: theirs.ID, FullName: "Eve"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if _, err := s.GetUser(ctx, mine.ID, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("user of another household should not be visible, got %v", err)
	}
	if err := s.DeleteUser(ctx, mine.ID, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("user of another household should not be deletable, got %v", err)
	}

	users, _ := s.ListUsers(ctx, mine.ID)
	if len(users) != 0 {
		t.Errorf("expected no users, got %d", len(users))
	}
}
