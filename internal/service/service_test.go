package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/database"
	"github.com/Mikemeister8/octogon-home-app/internal/logger"
	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/Mikemeister8/octogon-home-app/internal/repository"
	"github.com/google/uuid"
)

// memoryCache is a simple in-process cache for testing
type memoryCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	hits        int
	invalidated int
	generation  int64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	m.hits++
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCache) Generation(_ context.Context, _ uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.generation, nil
}

func (m *memoryCache) InvalidateHousehold(_ context.Context, _ uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = map[string][]byte{}
	m.invalidated++
	m.generation++
	return nil
}

type fixture struct {
	store        repository.Store
	cache        *memoryCache
	leaderboards *LeaderboardService
	completions  *CompletionService
	household    *models.Household
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	store := repository.NewSQLiteStore(db)
	t.Cleanup(func() { store.Close() })

	h := &models.Household{Name: "Casa", Timezone: "UTC"}
	if err := store.CreateHousehold(context.Background(), h); err != nil {
		t.Fatalf("CreateHousehold: %v", err)
	}

	c := newMemoryCache()
	log := logger.Nop()
	leaderboards := NewLeaderboardService(store, c, log)
	return &fixture{
		store:        store,
		cache:        c,
		leaderboards: leaderboards,
		completions:  NewCompletionService(store, leaderboards, log),
		household:    h,
	}
}

func (f *fixture) user(t *testing.T, name string) models.User {
	t.Helper()
	u := models.User{HouseholdID: f.household.ID, FullName: name, Theme: "octogon"}
	if err := f.store.CreateUser(context.Background(), &u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func (f *fixture) task(t *testing.T, title string, points int, multiple bool) models.Task {
	t.Helper()
	task := models.Task{
		HouseholdID:         f.household.ID,
		Title:               title,
		DefaultPoints:       points,
		AllowMultiplePerDay: multiple,
		IsActive:            true,
	}
	if err := f.store.CreateTask(context.Background(), &task); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	return task
}

func (f *fixture) record(t *testing.T, task models.Task, user models.User, at time.Time) models.Completion {
	t.Helper()
	c, err := f.completions.Record(context.Background(), f.household, task.ID, user.ID, at, at)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	return *c
}
