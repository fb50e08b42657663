package gateway

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/apperr"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
)

const (
	// GitHub answers 202 while contributor statistics are being
	// computed for a cold repository.
	statsAttempts = 3

	maxContributors = 10
	maxLanguages    = 5
)

var statsRetryDelay = 2 * time.Second

// languageColors maps common languages to the hex colors the dashboard
// charts use. Anything unknown falls back to otherLanguageColor.
var languageColors = map[string]string{
	"Go":         "#00ADD8",
	"TypeScript": "#3178c6",
	"JavaScript": "#f1e05a",
	"Python":     "#3572A5",
	"Rust":       "#dea584",
	"Java":       "#b07219",
	"C":          "#555555",
	"C++":        "#f34b7d",
	"C#":         "#178600",
	"Ruby":       "#701516",
	"PHP":        "#4F5D95",
	"Shell":      "#89e051",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"Kotlin":     "#A97BFF",
	"Swift":      "#F05138",
	"Dockerfile": "#384d54",
}

const otherLanguageColor = "#ededed"

// weekWindow buckets timestamps into the trailing fetch window,
// index 0 being the oldest week.
type weekWindow struct {
	start time.Time
	weeks int
}

func newWeekWindow(now time.Time, weeks int) weekWindow {
	return weekWindow{
		start: now.Add(-time.Duration(weeks) * 7 * 24 * time.Hour),
		weeks: weeks,
	}
}

func (w weekWindow) index(t time.Time) (int, bool) {
	if t.Before(w.start) {
		return 0, false
	}
	i := int(t.Sub(w.start) / (7 * 24 * time.Hour))
	if i >= w.weeks {
		return 0, false
	}
	return i, true
}

// sinceDate renders the window start for GitHub search qualifiers.
func (w weekWindow) sinceDate() string {
	return w.start.Format("2006-01-02")
}

// repoFacts carries the header scalars the overview is built from.
type repoFacts struct {
	description string
	homepage    string
	stars       int
	forks       int
	openIssues  int
	watchers    int
}

func (g *GitHubGateway) fetchRepoFacts(ctx context.Context, owner, repo string, quota *quotaTracker) (repoFacts, error) {
	repository, resp, err := g.restClient.Repositories.Get(ctx, owner, repo)
	quota.record(resp)
	if err != nil {
		return repoFacts{}, classifyGitHubError(err, owner+"/"+repo)
	}
	return repoFacts{
		description: repository.GetDescription(),
		homepage:    repository.GetHomepage(),
		stars:       repository.GetStargazersCount(),
		forks:       repository.GetForksCount(),
		openIssues:  repository.GetOpenIssuesCount(),
		watchers:    repository.GetSubscribersCount(),
	}, nil
}

func (g *GitHubGateway) fetchLanguages(ctx context.Context, owner, repo string, quota *quotaTracker) ([]domain.LanguageMetric, error) {
	byteCounts, resp, err := g.restClient.Repositories.ListLanguages(ctx, owner, repo)
	quota.record(resp)
	if err != nil {
		return nil, classifyGitHubError(err, owner+"/"+repo)
	}
	return normalizeLanguages(byteCounts), nil
}

// normalizeLanguages turns GitHub's byte counts into a percentage
// breakdown: the largest languages individually, the tail folded into
// an "Other" slice.
func normalizeLanguages(byteCounts map[string]int) []domain.LanguageMetric {
	total := 0
	for _, bytes := range byteCounts {
		total += bytes
	}
	if total <= 0 {
		return []domain.LanguageMetric{}
	}

	type langBytes struct {
		name  string
		bytes int
	}
	ranked := make([]langBytes, 0, len(byteCounts))
	for name, bytes := range byteCounts {
		ranked = append(ranked, langBytes{name, bytes})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].bytes != ranked[j].bytes {
			return ranked[i].bytes > ranked[j].bytes
		}
		return ranked[i].name < ranked[j].name
	})

	metrics := make([]domain.LanguageMetric, 0, maxLanguages+1)
	covered := 0.0
	for i, lang := range ranked {
		if i == maxLanguages {
			break
		}
		pct := roundPercentage(100 * float64(lang.bytes) / float64(total))
		color, ok := languageColors[lang.name]
		if !ok {
			color = otherLanguageColor
		}
		metrics = append(metrics, domain.LanguageMetric{
			Name:       lang.name,
			Percentage: pct,
			Color:      color,
		})
		covered += pct
	}
	if rest := roundPercentage(100 - covered); rest > 0 && len(ranked) > maxLanguages {
		metrics = append(metrics, domain.LanguageMetric{
			Name:       "Other",
			Percentage: rest,
			Color:      otherLanguageColor,
		})
	}
	return metrics
}

func roundPercentage(v float64) float64 {
	rounded := math.Round(v*10) / 10
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

// contributorActivity carries everything derived from contributor
// statistics: the three activity series plus the leaderboard.
type contributorActivity struct {
	commits      []int
	additions    []int
	deletions    []int
	contributors []domain.Contributor
}

func (g *GitHubGateway) fetchContributorActivity(ctx context.Context, owner, repo string, window weekWindow, quota *quotaTracker) (contributorActivity, error) {
	stats, err := g.listContributorsStats(ctx, owner, repo, quota)
	if err != nil {
		return contributorActivity{}, err
	}

	activity := contributorActivity{
		commits:   make([]int, window.weeks),
		additions: make([]int, window.weeks),
		deletions: make([]int, window.weeks),
	}
	for _, contributorStats := range stats {
		windowCommits := 0
		windowLines := 0
		for _, week := range contributorStats.Weeks {
			i, ok := window.index(week.GetWeek().Time)
			if !ok {
				continue
			}
			activity.commits[i] += week.GetCommits()
			activity.additions[i] += week.GetAdditions()
			activity.deletions[i] += week.GetDeletions()
			windowCommits += week.GetCommits()
			windowLines += week.GetAdditions() + week.GetDeletions()
		}
		if windowCommits == 0 && windowLines == 0 {
			continue
		}
		author := contributorStats.GetAuthor()
		activity.contributors = append(activity.contributors, domain.Contributor{
			Login:        author.GetLogin(),
			AvatarURL:    author.GetAvatarURL(),
			Commits:      windowCommits,
			LinesChanged: windowLines,
		})
	}

	sort.Slice(activity.contributors, func(i, j int) bool {
		if activity.contributors[i].Commits != activity.contributors[j].Commits {
			return activity.contributors[i].Commits > activity.contributors[j].Commits
		}
		return activity.contributors[i].Login < activity.contributors[j].Login
	})
	if len(activity.contributors) > maxContributors {
		activity.contributors = activity.contributors[:maxContributors]
	}
	return activity, nil
}

func (g *GitHubGateway) listContributorsStats(ctx context.Context, owner, repo string, quota *quotaTracker) ([]*github.ContributorStats, error) {
	target := owner + "/" + repo
	for attempt := 1; attempt <= statsAttempts; attempt++ {
		stats, resp, err := g.restClient.Repositories.ListContributorsStats(ctx, owner, repo)
		quota.record(resp)
		if err == nil {
			return stats, nil
		}

		var accepted *github.AcceptedError
		if !errors.As(err, &accepted) {
			return nil, classifyGitHubError(err, target)
		}

		g.logger.Debug("contributor statistics still computing",
			zap.String("repository", target),
			zap.Int("attempt", attempt),
		)
		select {
		case <-time.After(statsRetryDelay):
		case <-ctx.Done():
			return nil, classifyGitHubError(ctx.Err(), target)
		}
	}
	return nil, apperr.UpstreamUnavailable(
		"contributor statistics for "+target+" are still being computed", nil)
}
