// Package usecase contains the business logic of the dashboard: snapshot
// retrieval with caching and request coalescing, and the comparison view.
package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/apperr"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/gateway"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/snapcache"
)

// SnapshotService answers snapshot requests from the cache where
// possible and coalesces concurrent fetches for the same repository and
// window into a single provider call.
type SnapshotService struct {
	provider gateway.Provider
	cache    *snapcache.Cache
	timeout  time.Duration
	logger   *zap.Logger
	group    singleflight.Group
}

// NewSnapshotService wires a provider to the cache. timeout bounds every
// provider fetch.
func NewSnapshotService(provider gateway.Provider, cache *snapcache.Cache, timeout time.Duration, logger *zap.Logger) *SnapshotService {
	return &SnapshotService{
		provider: provider,
		cache:    cache,
		timeout:  timeout,
		logger:   logger,
	}
}

// Get returns a validated snapshot for owner/repo covering the trailing
// weeks, from cache when fresh.
func (s *SnapshotService) Get(ctx context.Context, owner, repo string, weeks int) (*domain.ProjectData, error) {
	if err := gateway.ValidateTarget(owner, repo); err != nil {
		return nil, err
	}
	weeks, err := gateway.ClampWeeks(weeks)
	if err != nil {
		return nil, err
	}

	key := snapcache.Key(owner, repo, weeks)
	if snapshot, ok := s.cache.Get(key); ok {
		s.logger.Debug("snapshot served from cache", zap.String("key", key))
		return snapshot, nil
	}

	result, err, shared := s.group.Do(key, func() (interface{}, error) {
		fetchCtx := ctx
		if s.timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}

		snapshot, err := s.provider.Fetch(fetchCtx, owner, repo, weeks)
		if err != nil {
			return nil, apperr.From(err)
		}
		if err := snapshot.Validate(); err != nil {
			return nil, apperr.MalformedResponse("provider returned an inconsistent snapshot", err)
		}

		s.cache.Set(key, snapshot)
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("snapshot fetch coalesced", zap.String("key", key))
	}
	return result.(*domain.ProjectData), nil
}

// Invalidate drops the cached snapshot for one request shape, forcing the
// next Get to hit the provider.
func (s *SnapshotService) Invalidate(owner, repo string, weeks int) {
	s.cache.Delete(snapcache.Key(owner, repo, weeks))
}
