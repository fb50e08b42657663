package watchlist

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/apperr"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
)

const (
	runTimeout         = 10 * time.Minute
	refreshConcurrency = 4
)

// Snapshots is the slice of the snapshot service the refresher needs.
type Snapshots interface {
	Get(ctx context.Context, owner, repo string, weeks int) (*domain.ProjectData, error)
	Invalidate(owner, repo string, weeks int)
}

// Refresher rebuilds the snapshots of all watched repositories on a
// cron schedule so dashboard reads stay warm.
type Refresher struct {
	store     *Store
	snapshots Snapshots
	c         *cron.Cron
	logger    *zap.Logger
}

// NewRefresher schedules a refresh of the whole watchlist. The spec
// accepts the standard five-field cron syntax plus descriptors such as
// "@hourly".
func NewRefresher(store *Store, snapshots Snapshots, spec string, logger *zap.Logger) (*Refresher, error) {
	r := &Refresher{
		store:     store,
		snapshots: snapshots,
		c:         cron.New(),
		logger:    logger,
	}
	if _, err := r.c.AddFunc(spec, r.run); err != nil {
		return nil, apperr.InvalidArgument("invalid refresh schedule", map[string]error{
			"refresh_cron": fmt.Errorf("%q: %w", spec, err),
		})
	}
	return r, nil
}

// Start begins executing the schedule in its own goroutine.
func (r *Refresher) Start() {
	r.c.Start()
	r.logger.Info("watchlist refresher started")
}

// Stop halts the schedule. A refresh already in flight finishes.
func (r *Refresher) Stop() {
	r.c.Stop()
	r.logger.Info("watchlist refresher stopped")
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := r.RunOnce(ctx); err != nil {
		r.logger.Error("watchlist refresh failed", zap.Error(err))
	}
}

// RunOnce refreshes every watched repository right now and reports how
// many snapshots were rebuilt. Individual failures are logged and do
// not stop the rest of the sweep.
func (r *Refresher) RunOnce(ctx context.Context) (int, error) {
	watched, err := r.store.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(watched) == 0 {
		return 0, nil
	}

	r.logger.Info("refreshing watchlist", zap.Int("repositories", len(watched)))

	var refreshed atomic.Int64
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(refreshConcurrency)
	for _, entry := range watched {
		eg.Go(func() error {
			r.snapshots.Invalidate(entry.Owner, entry.Name, entry.Weeks)
			if _, err := r.snapshots.Get(egCtx, entry.Owner, entry.Name, entry.Weeks); err != nil {
				r.logger.Warn("watchlist refresh skipped repository",
					zap.String("owner", entry.Owner),
					zap.String("repo", entry.Name),
					zap.Error(err))
				return nil
			}
			if err := r.store.TouchRefreshed(egCtx, entry.ID, time.Now().UTC()); err != nil {
				r.logger.Warn("cannot record refresh time",
					zap.Int64("id", entry.ID),
					zap.Error(err))
			}
			refreshed.Add(1)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	count := int(refreshed.Load())
	r.logger.Info("watchlist refresh finished",
		zap.Int("refreshed", count),
		zap.Int("repositories", len(watched)))
	return count, nil
}
