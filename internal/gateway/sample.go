package gateway

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/apperr"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
)

// Weekly activity stays below these bounds so sample charts keep a
// readable scale.
const (
	sampleMaxWeeklyCommits   = 500
	sampleMaxWeeklyPRsOpened = 80
	sampleMaxWeeklyPRsMerged = 60
	sampleMaxWeeklyAdditions = 5000
	sampleMaxWeeklyDeletions = 2000
)

var sampleLogins = []string{
	"mona-lisa", "hubot", "octo-maint", "devbot",
	"kai-ci", "river-ops", "sol-backend", "ada-frontend",
}

// SampleProvider serves generated snapshots without touching the network,
// so the dashboard can be demoed without a token or quota. Weekly series
// are random within fixed bounds, everything else is stable.
type SampleProvider struct {
	mu      sync.Mutex
	rng     *rand.Rand
	latency time.Duration
	logger  *zap.Logger
}

// NewSampleProvider builds a provider with a time-based seed and a
// simulated network delay on every fetch.
func NewSampleProvider(logger *zap.Logger) *SampleProvider {
	return &SampleProvider{
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		latency: 400 * time.Millisecond,
		logger:  logger,
	}
}

// NewSeededSampleProvider builds a deterministic provider with no
// simulated delay. Two providers with the same seed generate identical
// snapshots for identical calls.
func NewSeededSampleProvider(seed int64, logger *zap.Logger) *SampleProvider {
	return &SampleProvider{
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

// Fetch generates a snapshot for owner/repo covering the trailing weeks.
func (s *SampleProvider) Fetch(ctx context.Context, owner, repo string, weeks int) (*domain.ProjectData, error) {
	if err := ValidateTarget(owner, repo); err != nil {
		return nil, err
	}
	weeks, err := ClampWeeks(weeks)
	if err != nil {
		return nil, err
	}

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	fullName := owner + "/" + repo
	s.logger.Debug("generating sample snapshot",
		zap.String("repository", fullName),
		zap.Int("weeks", weeks),
	)

	s.mu.Lock()
	commits := s.series(weeks, sampleMaxWeeklyCommits)
	prsOpened := s.series(weeks, sampleMaxWeeklyPRsOpened)
	prsMerged := s.series(weeks, sampleMaxWeeklyPRsMerged)
	additions := s.series(weeks, sampleMaxWeeklyAdditions)
	deletions := s.series(weeks, sampleMaxWeeklyDeletions)
	contributors := s.contributors()
	s.mu.Unlock()

	now := time.Now().UTC()
	return &domain.ProjectData{
		Owner:    owner,
		Name:     repo,
		FullName: fullName,
		Overview: domain.RepoOverview{
			Description: "A sample open source project used to demo the health dashboard.",
			HomepageURL: fmt.Sprintf("https://%s.github.io/%s", owner, repo),
			Stars:       1284,
			Forks:       167,
			OpenIssues:  23,
			Watchers:    86,
			TriageScore: 72.5,
		},
		WeeklyCommits:   commits,
		WeeklyPRsOpened: prsOpened,
		WeeklyPRsMerged: prsMerged,
		WeeklyAdditions: additions,
		WeeklyDeletions: deletions,
		Contributors:    contributors,
		Languages: []domain.LanguageMetric{
			{Name: "Go", Percentage: 52.7, Color: "#00ADD8"},
			{Name: "TypeScript", Percentage: 28.1, Color: "#3178c6"},
			{Name: "JavaScript", Percentage: 11.4, Color: "#f1e05a"},
			{Name: "Shell", Percentage: 4.6, Color: "#89e051"},
			{Name: "Other", Percentage: 3.2, Color: "#ededed"},
		},
		Prediction: domain.IssuePrediction{
			AvgTimeToFirstLabelHours: 18.5,
			Severity:                 domain.SeverityMedium,
			NextWeekPredictedIssues:  14,
		},
		Dora: domain.DoraMetrics{
			DeploymentFrequency:       "2.3 per week",
			LeadTimeForChangesHours:   26.4,
			TimeToRestoreServiceHours: 3.2,
			ChangeFailureRate:         "4.1%",
		},
		Velocity: domain.TeamVelocity{
			CurrentSprintName:          "Sprint 24",
			TotalStoryPoints:           55,
			CompletedStoryPoints:       34,
			SprintCompletionPercentage: 61.8,
		},
		APIStatus: domain.APIStatus{
			CallsMade:          42,
			RateLimitRemaining: 4958,
			RateLimitTotal:     5000,
			ResetTime:          now.Add(time.Hour).Unix(),
			IsRateLimited:      false,
		},
		Weeks:     weeks,
		FetchedAt: now,
	}, nil
}

func (s *SampleProvider) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}

	s.mu.Lock()
	// Between one and three times the base latency, like a flaky network.
	delay := s.latency + time.Duration(s.rng.Int63n(int64(2*s.latency)))
	s.mu.Unlock()

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return apperr.Timeout("sample fetch cancelled", ctx.Err())
	}
}

func (s *SampleProvider) series(weeks, max int) []int {
	values := make([]int, weeks)
	for i := range values {
		values[i] = s.rng.Intn(max)
	}
	return values
}

func (s *SampleProvider) contributors() []domain.Contributor {
	contributors := make([]domain.Contributor, len(sampleLogins))
	for i, login := range sampleLogins {
		contributors[i] = domain.Contributor{
			Login:        login,
			AvatarURL:    fmt.Sprintf("https://avatars.githubusercontent.com/%s", login),
			Commits:      s.rng.Intn(120),
			LinesChanged: s.rng.Intn(4000),
		}
	}
	sort.Slice(contributors, func(i, j int) bool {
		return contributors[i].Commits > contributors[j].Commits
	})
	return contributors
}
