package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/cache"
	"github.com/Mikemeister8/octogon-home-app/internal/logger"
	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/Mikemeister8/octogon-home-app/internal/ranking"
	"github.com/Mikemeister8/octogon-home-app/internal/repository"
	"golang.org/x/sync/errgroup"
)

// LeaderboardService builds leaderboards from store snapshots and caches them
type LeaderboardService struct {
	store repository.Store
	cache cache.Cache
	log   *logger.Logger
}

func NewLeaderboardService(store repository.Store, c cache.Cache, log *logger.Logger) *LeaderboardService {
	if c == nil {
		c = cache.Noop{}
	}
	return &LeaderboardService{store: store, cache: c, log: log}
}

// snapshot is the read-only input handed to the ranking engine
type snapshot struct {
	users       []models.User
	tasks       []models.Task
	completions []models.Completion
}

// load reads users, tasks and the completions inside [since, until)
// concurrently. Zero bounds are open.
func (s *LeaderboardService) load(ctx context.Context, h *models.Household, since, until time.Time) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		users, err := s.store.ListUsers(gctx, h.ID)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		snap.users = users
		return nil
	})
	g.Go(func() error {
		// inactive tasks still resolve points of old completions
		tasks, err := s.store.ListTasks(gctx, h.ID, false)
		if err != nil {
			return fmt.Errorf("list tasks: %w", err)
		}
		snap.tasks = tasks
		return nil
	})
	g.Go(func() error {
		completions, err := s.store.ListCompletions(gctx, h.ID, repository.CompletionFilter{Since: since, Until: until})
		if err != nil {
			return fmt.Errorf("list completions: %w", err)
		}
		snap.completions = completions
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// cached returns the cached value for period or computes and stores it.
// The key carries the household's cache generation read before computing, so
// a value built from a snapshot that an invalidation raced with is stored
// under a generation nobody reads anymore. Cache failures are logged and
// never fail the request.
func cached[T any](ctx context.Context, s *LeaderboardService, h *models.Household, period string, compute func() (T, error)) (T, error) {
	gen, err := s.cache.Generation(ctx, h.ID)
	if err != nil {
		s.log.Warn("leaderboard cache generation read failed", "household_id", h.ID, "error", err)
		return compute()
	}
	key := cache.VersionedKey(h.ID, gen, period)

	var hit T
	found, err := s.cache.Get(ctx, key, &hit)
	if err != nil {
		s.log.Warn("leaderboard cache read failed", "key", key, "error", err)
	} else if found {
		return hit, nil
	}

	value, err := compute()
	if err != nil {
		return value, err
	}

	if err := s.cache.Set(ctx, key, value); err != nil {
		s.log.Warn("leaderboard cache write failed", "key", key, "error", err)
	}
	return value, nil
}

// Invalidate drops every cached leaderboard of the household
func (s *LeaderboardService) Invalidate(ctx context.Context, h *models.Household) {
	if err := s.cache.InvalidateHousehold(ctx, h.ID); err != nil {
		s.log.Warn("leaderboard cache invalidation failed", "household_id", h.ID, "error", err)
	}
}

// Current returns the leaderboard of the month containing now
func (s *LeaderboardService) Current(ctx context.Context, h *models.Household, now time.Time) (*models.LeaderboardResponse, error) {
	w := ranking.CurrentMonth(now.In(h.Location()))
	return s.Month(ctx, h, w.Month, w.Year, now)
}

// Month returns the leaderboard of one month (0 = January). Months after the
// one containing now are rejected with ErrFutureWindow.
func (s *LeaderboardService) Month(ctx context.Context, h *models.Household, month, year int, now time.Time) (*models.LeaderboardResponse, error) {
	w, err := ranking.MonthWindow(month, year)
	if err != nil {
		return nil, err
	}
	return s.windowed(ctx, h, w.In(h.Location()), now)
}

// Year returns the leaderboard of a calendar year
func (s *LeaderboardService) Year(ctx context.Context, h *models.Household, year int, now time.Time) (*models.LeaderboardResponse, error) {
	w, err := ranking.YearWindow(year)
	if err != nil {
		return nil, err
	}
	return s.windowed(ctx, h, w.In(h.Location()), now)
}

func (s *LeaderboardService) windowed(ctx context.Context, h *models.Household, w ranking.Window, now time.Time) (*models.LeaderboardResponse, error) {
	if w.After(now) {
		return nil, fmt.Errorf("%w: %s", ErrFutureWindow, w)
	}

	return cached(ctx, s, h, w.Period()+":"+w.String(), func() (*models.LeaderboardResponse, error) {
		snap, err := s.load(ctx, h, w.Start(), w.End())
		if err != nil {
			return nil, err
		}
		standings := ranking.Rank(snap.users, snap.completions, ranking.PreferInline(snap.tasks), &w)
		return windowResponse(h, w, standings), nil
	})
}

// AllTime returns the leaderboard over every completion
func (s *LeaderboardService) AllTime(ctx context.Context, h *models.Household) (*models.LeaderboardResponse, error) {
	return cached(ctx, s, h, "alltime", func() (*models.LeaderboardResponse, error) {
		snap, err := s.load(ctx, h, time.Time{}, time.Time{})
		if err != nil {
			return nil, err
		}
		standings := ranking.Rank(snap.users, snap.completions, ranking.PreferInline(snap.tasks), nil)
		return &models.LeaderboardResponse{
			Period:      "alltime",
			TokenName:   h.Label(),
			Leaderboard: toEntries(standings),
			TotalUsers:  len(standings),
		}, nil
	})
}

// History returns one leaderboard per month of year, up to the month
// containing now.
func (s *LeaderboardService) History(ctx context.Context, h *models.Household, year int, now time.Time) (*models.HistoryResponse, error) {
	yw, err := ranking.YearWindow(year)
	if err != nil {
		return nil, err
	}
	yw = yw.In(h.Location())
	if yw.After(now) {
		return nil, fmt.Errorf("%w: %s", ErrFutureWindow, yw)
	}

	// the list ends at the month containing now, so the key names that month
	to := yw.End().Add(-time.Nanosecond)
	if now.Before(to) {
		to = now
	}
	last := ranking.CurrentMonth(to.In(h.Location()))

	return cached(ctx, s, h, "history:"+yw.String()+":"+last.String(), func() (*models.HistoryResponse, error) {
		snap, err := s.load(ctx, h, yw.Start(), yw.End())
		if err != nil {
			return nil, err
		}

		history := ranking.History(snap.users, snap.completions, ranking.PreferInline(snap.tasks), yw.Start(), to, h.Location())

		resp := &models.HistoryResponse{
			Year:      year,
			TokenName: h.Label(),
			Months:    make([]models.LeaderboardResponse, 0, len(history)),
		}
		for _, m := range history {
			resp.Months = append(resp.Months, *windowResponse(h, m.Window, m.Standings))
		}
		return resp, nil
	})
}

// Breakdown counts completions per task and user for period "month" (current
// month), "year" (current year) or "total".
func (s *LeaderboardService) Breakdown(ctx context.Context, h *models.Household, period string, now time.Time) (*models.DashboardResponse, error) {
	local := now.In(h.Location())

	var window *ranking.Window
	switch period {
	case "month":
		w := ranking.CurrentMonth(local)
		window = &w
	case "year":
		w, err := ranking.YearWindow(local.Year())
		if err != nil {
			return nil, err
		}
		w = w.In(h.Location())
		window = &w
	case "total":
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidPeriod, period)
	}

	key := "dashboard:total"
	var since, until time.Time
	if window != nil {
		key = "dashboard:" + window.Period() + ":" + window.String()
		since, until = window.Start(), window.End()
	}

	return cached(ctx, s, h, key, func() (*models.DashboardResponse, error) {
		snap, err := s.load(ctx, h, since, until)
		if err != nil {
			return nil, err
		}

		breakdowns := ranking.TaskBreakdown(activeTasks(snap.tasks), snap.users, snap.completions, window)
		resp := &models.DashboardResponse{
			Period: period,
			Tasks:  make([]models.TaskBreakdown, 0, len(breakdowns)),
		}
		for _, b := range breakdowns {
			tb := models.TaskBreakdown{
				TaskID: b.Task.ID,
				Title:  b.Task.Title,
				Total:  b.Total,
				Users:  make([]models.TaskBreakdownUser, 0, len(b.Users)),
			}
			for _, uc := range b.Users {
				tb.Users = append(tb.Users, models.TaskBreakdownUser{
					UserID:   uc.User.ID,
					FullName: uc.User.FullName,
					ColorHex: uc.User.ColorHex,
					Count:    uc.Count,
				})
			}
			resp.Tasks = append(resp.Tasks, tb)
		}
		return resp, nil
	})
}

func activeTasks(tasks []models.Task) []models.Task {
	active := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.IsActive {
			active = append(active, t)
		}
	}
	return active
}

func windowResponse(h *models.Household, w ranking.Window, standings []ranking.Standing) *models.LeaderboardResponse {
	year := w.Year
	resp := &models.LeaderboardResponse{
		Period:      w.Period(),
		Year:        &year,
		TokenName:   h.Label(),
		Leaderboard: toEntries(standings),
		TotalUsers:  len(standings),
	}
	if w.Scope == ranking.ScopeMonth {
		month := w.Month
		resp.Month = &month
	}
	return resp
}

func toEntries(standings []ranking.Standing) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(standings))
	for _, st := range standings {
		entries = append(entries, models.LeaderboardEntry{
			Rank:      st.Rank,
			UserID:    st.User.ID,
			FullName:  st.User.FullName,
			AvatarURL: st.User.AvatarURL,
			ColorHex:  st.User.ColorHex,
			Points:    st.Points,
		})
	}
	return entries
}
