package cache

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/logger"
	"github.com/google/uuid"
)

type entry struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

func TestKey(t *testing.T) {
	id := uuid.MustParse("6f1c2a4e-8d1b-4c3a-9e2f-0a1b2c3d4e5f")
	got := Key(id, "month:2024-03")
	want := "leaderboard:6f1c2a4e-8d1b-4c3a-9e2f-0a1b2c3d4e5f:month:2024-03"
	if got != want {
		t.Errorf("Key() = %s, want %s", got, want)
	}
	if !strings.HasPrefix(got, householdPrefix(id)) {
		t.Error("key must live under the household prefix")
	}
}

func TestVersionedKey(t *testing.T) {
	id := uuid.New()
	a := VersionedKey(id, 1, "alltime")
	b := VersionedKey(id, 2, "alltime")
	if a == b {
		t.Fatal("generations must produce distinct keys")
	}
	if !strings.HasPrefix(a, householdPrefix(id)) {
		t.Error("versioned key must live under the household prefix")
	}
	if strings.HasPrefix(generationKey(id), householdPrefix(id)) {
		t.Error("generation key must not be removed by invalidation")
	}
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Cache = Noop{}

	if err := c.Set(ctx, "k", entry{Name: "a"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var got entry
	found, err := c.Get(ctx, "k", &got)
	if err != nil || found {
		t.Errorf("Noop.Get = (%v, %v), want miss", found, err)
	}
	if err := c.InvalidateHousehold(ctx, uuid.New()); err != nil {
		t.Errorf("InvalidateHousehold: %v", err)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDRESS")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDRESS not set")
	}

	ctx := context.Background()
	c, err := NewRedisCache(ctx, addr, "", 0, time.Minute, logger.Nop())
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	mine, theirs := uuid.New(), uuid.New()
	keyA := Key(mine, "alltime")
	keyB := Key(mine, "month:2024-03")
	keyOther := Key(theirs, "alltime")

	for _, k := range []string{keyA, keyB, keyOther} {
		if err := c.Set(ctx, k, entry{Name: k, Points: 7}); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	var got entry
	found, err := c.Get(ctx, keyA, &got)
	if err != nil || !found || got.Points != 7 {
		t.Fatalf("Get = (%v, %v, %+v)", found, err, got)
	}

	before, err := c.Generation(ctx, mine)
	if err != nil {
		t.Fatalf("Generation: %v", err)
	}
	if err := c.InvalidateHousehold(ctx, mine); err != nil {
		t.Fatalf("InvalidateHousehold: %v", err)
	}
	after, err := c.Generation(ctx, mine)
	if err != nil {
		t.Fatalf("Generation: %v", err)
	}
	if after != before+1 {
		t.Errorf("generation = %d after invalidation, want %d", after, before+1)
	}

	for _, k := range []string{keyA, keyB} {
		if found, _ := c.Get(ctx, k, &got); found {
			t.Errorf("%s should be invalidated", k)
		}
	}
	if found, _ := c.Get(ctx, keyOther, &got); !found {
		t.Error("other household's entry should survive")
	}
	c.InvalidateHousehold(ctx, theirs)
	c.client.Del(ctx, generationKey(mine), generationKey(theirs))
}
