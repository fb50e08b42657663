package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/apperr"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
)

// GitHubGateway fetches live snapshots through a hybrid of the REST and
// GraphQL APIs. Repository facts, languages and contributor statistics
// come over REST, pull request, issue and milestone activity over GraphQL.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *zap.Logger
}

// NewGitHubGateway builds a gateway authenticated with token. Secondary
// rate limits are absorbed by a waiting transport so a burst of fetches
// degrades into slowness instead of errors.
func NewGitHubGateway(token string, logger *zap.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

// Fetch assembles one snapshot for owner/repo covering the trailing
// weeks. The six upstream aspects are fetched concurrently; the first
// classified failure cancels the rest.
func (g *GitHubGateway) Fetch(ctx context.Context, owner, repo string, weeks int) (*domain.ProjectData, error) {
	if err := ValidateTarget(owner, repo); err != nil {
		return nil, err
	}
	weeks, err := ClampWeeks(weeks)
	if err != nil {
		return nil, err
	}

	fullName := owner + "/" + repo
	now := time.Now().UTC()
	window := newWeekWindow(now, weeks)
	quota := &quotaTracker{}

	g.logger.Info("fetching live snapshot",
		zap.String("repository", fullName),
		zap.Int("weeks", weeks),
	)

	var (
		overview  repoFacts
		languages []domain.LanguageMetric
		activity  contributorActivity
		prs       prActivity
		issues    issueActivity
		milestone *milestoneInfo
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		overview, err = g.fetchRepoFacts(egCtx, owner, repo, quota)
		return err
	})
	eg.Go(func() error {
		var err error
		languages, err = g.fetchLanguages(egCtx, owner, repo, quota)
		return err
	})
	eg.Go(func() error {
		var err error
		activity, err = g.fetchContributorActivity(egCtx, owner, repo, window, quota)
		return err
	})
	eg.Go(func() error {
		var err error
		prs, err = g.fetchPRActivity(egCtx, owner, repo, window, quota)
		return err
	})
	eg.Go(func() error {
		var err error
		issues, err = g.fetchIssueActivity(egCtx, owner, repo, window, quota)
		return err
	})
	eg.Go(func() error {
		var err error
		milestone, err = g.fetchCurrentMilestone(egCtx, owner, repo, quota)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	snapshot := &domain.ProjectData{
		Owner:    owner,
		Name:     repo,
		FullName: fullName,
		Overview: domain.RepoOverview{
			Description: overview.description,
			HomepageURL: overview.homepage,
			Stars:       overview.stars,
			Forks:       overview.forks,
			OpenIssues:  overview.openIssues,
			Watchers:    overview.watchers,
			TriageScore: deriveTriageScore(issues),
		},
		WeeklyCommits:   activity.commits,
		WeeklyPRsOpened: prs.openedPerWeek,
		WeeklyPRsMerged: prs.mergedPerWeek,
		WeeklyAdditions: activity.additions,
		WeeklyDeletions: activity.deletions,
		Contributors:    activity.contributors,
		Languages:       languages,
		Prediction:      derivePrediction(issues),
		Dora:            deriveDora(prs, issues, weeks),
		Velocity:        deriveVelocity(milestone),
		APIStatus:       quota.status(now),
		Weeks:           weeks,
		FetchedAt:       now,
	}

	if err := snapshot.Validate(); err != nil {
		return nil, apperr.MalformedResponse(
			fmt.Sprintf("snapshot for %s failed validation", fullName), err)
	}

	g.logger.Info("snapshot assembled",
		zap.String("repository", fullName),
		zap.Int("api_calls", snapshot.APIStatus.CallsMade),
		zap.Int("rate_remaining", snapshot.APIStatus.RateLimitRemaining),
	)
	return snapshot, nil
}

// quotaTracker counts upstream calls and remembers the most recent rate
// header so the snapshot can report quota consumption.
type quotaTracker struct {
	mu    sync.Mutex
	calls int
	rate  github.Rate
}

func (q *quotaTracker) record(resp *github.Response) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls++
	if resp != nil && resp.Rate.Limit > 0 {
		q.rate = resp.Rate
	}
}

// recordGraphQL counts a GraphQL call. The v4 client does not expose
// rate headers, so only the call counter moves.
func (q *quotaTracker) recordGraphQL() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls++
}

func (q *quotaTracker) status(now time.Time) domain.APIStatus {
	q.mu.Lock()
	defer q.mu.Unlock()

	rate := q.rate
	if rate.Limit == 0 {
		// No REST response carried rate headers, assume a fresh
		// standard quota.
		rate = github.Rate{
			Limit:     5000,
			Remaining: 5000,
			Reset:     github.Timestamp{Time: now.Add(time.Hour)},
		}
	}
	return domain.APIStatus{
		CallsMade:          q.calls,
		RateLimitRemaining: rate.Remaining,
		RateLimitTotal:     rate.Limit,
		ResetTime:          rate.Reset.Time.Unix(),
		IsRateLimited:      rate.Remaining == 0,
	}
}

// classifyGitHubError maps client errors onto the application taxonomy.
// Already classified errors pass through untouched.
func classifyGitHubError(err error, target string) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return apperr.RateLimited(
			fmt.Sprintf("github quota exhausted while fetching %s", target),
			rateErr.Rate.Reset.Time, err)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return apperr.RateLimited(
			fmt.Sprintf("github secondary limit hit while fetching %s", target),
			time.Now().Add(abuseErr.GetRetryAfter()), err)
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return apperr.NotFound(fmt.Sprintf("repository %s not found", target), err)
		case http.StatusUnauthorized:
			return apperr.Unauthorized("github rejected the token", err)
		case http.StatusForbidden:
			return apperr.Unauthorized(fmt.Sprintf("access to %s denied", target), err)
		default:
			return apperr.UpstreamUnavailable(
				fmt.Sprintf("github answered %d for %s", respErr.Response.StatusCode, target), err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.Timeout(fmt.Sprintf("fetching %s timed out", target), err)
	}
	// The GraphQL client reports HTTP failures as plain errors.
	if strings.Contains(err.Error(), "401") {
		return apperr.Unauthorized("github rejected the token", err)
	}
	return apperr.UpstreamUnavailable(fmt.Sprintf("github api request for %s failed", target), err)
}
