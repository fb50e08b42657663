package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/apperr"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/snapcache"
)

// mockProvider is a mock implementation of the gateway.Provider
// interface, so the service can be tested without a real data source.
type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Fetch(ctx context.Context, owner, repo string, weeks int) (*domain.ProjectData, error) {
	args := m.Called(ctx, owner, repo, weeks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectData), args.Error(1)
}

// validSnapshot mirrors the shape a well-behaved provider returns.
func validSnapshot(owner, repo string, weeks int) *domain.ProjectData {
	intSeries := func(v int) []int {
		s := make([]int, weeks)
		for i := range s {
			s[i] = v
		}
		return s
	}
	now := time.Now().UTC()
	return &domain.ProjectData{
		Owner:           owner,
		Name:            repo,
		FullName:        owner + "/" + repo,
		Overview:        domain.RepoOverview{Stars: 10, TriageScore: 80},
		WeeklyCommits:   intSeries(3),
		WeeklyPRsOpened: intSeries(1),
		WeeklyPRsMerged: intSeries(1),
		WeeklyAdditions: intSeries(100),
		WeeklyDeletions: intSeries(40),
		Prediction:      domain.IssuePrediction{Severity: domain.SeverityLow},
		Velocity:        domain.TeamVelocity{CurrentSprintName: "Sprint 1", TotalStoryPoints: 10, CompletedStoryPoints: 5, SprintCompletionPercentage: 50},
		APIStatus: domain.APIStatus{
			CallsMade:          5,
			RateLimitRemaining: 4000,
			RateLimitTotal:     5000,
			ResetTime:          now.Add(time.Hour).Unix(),
		},
		Weeks:     weeks,
		FetchedAt: now,
	}
}

func newTestService(provider *mockProvider, ttl time.Duration) (*SnapshotService, *snapcache.Cache) {
	cache := snapcache.New(ttl)
	service := NewSnapshotService(provider, cache, time.Second, zap.NewNop())
	return service, cache
}

func TestSnapshotService_Get_CachesResult(t *testing.T) {
	provider := new(mockProvider)
	service, cache := newTestService(provider, time.Minute)
	defer cache.Stop()

	snapshot := validSnapshot("octocat", "hello-world", 4)
	provider.On("Fetch", mock.Anything, "octocat", "hello-world", 4).Return(snapshot, nil).Once()

	first, err := service.Get(context.Background(), "octocat", "hello-world", 4)
	require.NoError(t, err)
	second, err := service.Get(context.Background(), "octocat", "hello-world", 4)
	require.NoError(t, err)

	assert.Same(t, first, second, "second call must come from the cache")
	provider.AssertExpectations(t)
}

func TestSnapshotService_Get_InvalidInputSkipsProvider(t *testing.T) {
	provider := new(mockProvider)
	service, cache := newTestService(provider, time.Minute)
	defer cache.Stop()

	_, err := service.Get(context.Background(), "bad owner", "repo", 4)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))

	_, err = service.Get(context.Background(), "octocat", "hello-world", -1)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))

	provider.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSnapshotService_Get_ClampsWeeksBeforeCaching(t *testing.T) {
	provider := new(mockProvider)
	service, cache := newTestService(provider, time.Minute)
	defer cache.Stop()

	snapshot := validSnapshot("octocat", "hello-world", domain.MaxWeeks)
	provider.On("Fetch", mock.Anything, "octocat", "hello-world", domain.MaxWeeks).Return(snapshot, nil).Once()

	first, err := service.Get(context.Background(), "octocat", "hello-world", domain.MaxWeeks+1)
	require.NoError(t, err)
	second, err := service.Get(context.Background(), "octocat", "hello-world", domain.MaxWeeks+30)
	require.NoError(t, err)

	assert.Same(t, first, second, "clamped windows share one cache entry")
	provider.AssertExpectations(t)
}

func TestSnapshotService_Get_ProviderErrorPassesThrough(t *testing.T) {
	provider := new(mockProvider)
	service, cache := newTestService(provider, time.Minute)
	defer cache.Stop()

	provider.On("Fetch", mock.Anything, "octocat", "gone", 4).
		Return(nil, apperr.NotFound("repository octocat/gone not found", nil))

	_, err := service.Get(context.Background(), "octocat", "gone", 4)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, 0, cache.Len(), "failures must not be cached")
}

func TestSnapshotService_Get_InvalidProviderSnapshotRejected(t *testing.T) {
	provider := new(mockProvider)
	service, cache := newTestService(provider, time.Minute)
	defer cache.Stop()

	broken := validSnapshot("octocat", "hello-world", 4)
	broken.WeeklyCommits = broken.WeeklyCommits[:2]
	provider.On("Fetch", mock.Anything, "octocat", "hello-world", 4).Return(broken, nil)

	_, err := service.Get(context.Background(), "octocat", "hello-world", 4)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindMalformedResponse))
	assert.Equal(t, 0, cache.Len())
}

// countingProvider serves concurrency tests where mock.Mock would race
// on call bookkeeping assertions.
type countingProvider struct {
	calls atomic.Int32
	delay time.Duration
}

func (p *countingProvider) Fetch(ctx context.Context, owner, repo string, weeks int) (*domain.ProjectData, error) {
	p.calls.Add(1)
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return validSnapshot(owner, repo, weeks), nil
}

func TestSnapshotService_Get_CoalescesConcurrentFetches(t *testing.T) {
	provider := &countingProvider{delay: 50 * time.Millisecond}
	cache := snapcache.New(time.Minute)
	defer cache.Stop()
	service := NewSnapshotService(provider, cache, time.Second, zap.NewNop())

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Get(context.Background(), "octocat", "hello-world", 4)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), provider.calls.Load(), "concurrent identical requests must coalesce")
}

func TestSnapshotService_Get_TimesOutSlowProvider(t *testing.T) {
	provider := &countingProvider{delay: time.Second}
	cache := snapcache.New(time.Minute)
	defer cache.Stop()
	service := NewSnapshotService(provider, cache, 20*time.Millisecond, zap.NewNop())

	_, err := service.Get(context.Background(), "octocat", "hello-world", 4)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindTimeout), "got %v", err)
}

func TestSnapshotService_Invalidate(t *testing.T) {
	provider := new(mockProvider)
	service, cache := newTestService(provider, time.Minute)
	defer cache.Stop()

	snapshot := validSnapshot("octocat", "hello-world", 4)
	provider.On("Fetch", mock.Anything, "octocat", "hello-world", 4).Return(snapshot, nil).Twice()

	_, err := service.Get(context.Background(), "octocat", "hello-world", 4)
	require.NoError(t, err)

	service.Invalidate("octocat", "hello-world", 4)

	_, err = service.Get(context.Background(), "octocat", "hello-world", 4)
	require.NoError(t, err)
	provider.AssertExpectations(t)
}
