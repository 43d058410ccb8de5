package cache

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Cache stores computed leaderboards per household.
// Get reports whether the key was found and decoded into dest.
// Generation returns a counter that InvalidateHousehold advances; callers put
// it in their keys so a value computed before an invalidation is never read
// after it.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Generation(ctx context.Context, householdID uuid.UUID) (int64, error)
	InvalidateHousehold(ctx context.Context, householdID uuid.UUID) error
}

// Key builds the cache key for one leaderboard period of a household,
// e.g. "leaderboard:<household>:month:2024-03"
func Key(householdID uuid.UUID, period string) string {
	return fmt.Sprintf("%s%s", householdPrefix(householdID), period)
}

// VersionedKey is Key scoped to one cache generation of the household
func VersionedKey(householdID uuid.UUID, generation int64, period string) string {
	return Key(householdID, fmt.Sprintf("g%d:%s", generation, period))
}

func householdPrefix(householdID uuid.UUID) string {
	return fmt.Sprintf("leaderboard:%s:", householdID)
}

// generationKey lives outside the household prefix so invalidation never
// resets it
func generationKey(householdID uuid.UUID) string {
	return fmt.Sprintf("leaderboard-gen:%s", householdID)
}

// Noop never stores anything. It is used when Redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (Noop) Set(context.Context, string, interface{}) error { return nil }

func (Noop) Generation(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func (Noop) InvalidateHousehold(context.Context, uuid.UUID) error { return nil }
