// Package domain contains the core data structures of the dashboard:
// the per-repository metric types, the ProjectData snapshot aggregate,
// and the comparison-view state shared by the CLI and the HTTP API.
package domain

import (
	"fmt"
	"time"
)

// Contributor holds one person's cumulative activity on a repository snapshot.
type Contributor struct {
	Login        string `json:"login"`
	AvatarURL    string `json:"avatar_url"`
	Commits      int    `json:"commits"`
	LinesChanged int    `json:"lines_changed"`
}

// LanguageMetric is one slice of a repository's language breakdown.
// Percentage is expressed in [0,100]; the full breakdown of a snapshot
// conceptually sums to ~100 but is not reconciled here.
type LanguageMetric struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// IssuePrediction summarizes issue-triage health for a snapshot.
// NextWeekPredictedIssues is a naive trailing-mean figure, not a model output.
type IssuePrediction struct {
	AvgTimeToFirstLabelHours float64  `json:"avg_time_to_first_label_hours"`
	Severity                 Severity `json:"severity"`
	NextWeekPredictedIssues  int      `json:"next_week_predicted_issues"`
}

// DoraMetrics holds the four DORA indicators. DeploymentFrequency and
// ChangeFailureRate keep the free-text form the dashboard renders directly.
type DoraMetrics struct {
	DeploymentFrequency       string  `json:"deployment_frequency"`
	LeadTimeForChangesHours   float64 `json:"lead_time_for_changes_hours"`
	TimeToRestoreServiceHours float64 `json:"time_to_restore_service_hours"`
	ChangeFailureRate         string  `json:"change_failure_rate"`
}

// TeamVelocity describes progress of the current sprint (milestone).
type TeamVelocity struct {
	CurrentSprintName          string  `json:"current_sprint_name"`
	TotalStoryPoints           int     `json:"total_story_points"`
	CompletedStoryPoints       int     `json:"completed_story_points"`
	SprintCompletionPercentage float64 `json:"sprint_completion_percentage"`
}

// APIStatus reports upstream quota consumption for the fetch that
// produced a snapshot. ResetTime is unix seconds.
type APIStatus struct {
	CallsMade          int   `json:"calls_made"`
	RateLimitRemaining int   `json:"rate_limit_remaining"`
	RateLimitTotal     int   `json:"rate_limit_total"`
	ResetTime          int64 `json:"reset_time"`
	IsRateLimited      bool  `json:"is_rate_limited"`
}

// RepoOverview carries the scalar repository facts shown in the header
// of the dashboard. TriageScore is an opaque composite in [0,100].
type RepoOverview struct {
	Description string  `json:"description"`
	HomepageURL string  `json:"homepage_url"`
	Stars       int     `json:"stars"`
	Forks       int     `json:"forks"`
	OpenIssues  int     `json:"open_issues"`
	Watchers    int     `json:"watchers"`
	TriageScore float64 `json:"triage_score"`
}

func (c Contributor) validate() error {
	if c.Commits < 0 || c.LinesChanged < 0 {
		return fmt.Errorf("contributor %q has negative activity counts", c.Login)
	}
	return nil
}

func (l LanguageMetric) validate() error {
	if l.Percentage < 0 || l.Percentage > 100 {
		return fmt.Errorf("language %q percentage %.2f outside [0,100]", l.Name, l.Percentage)
	}
	return nil
}

func (p IssuePrediction) validate() error {
	if p.AvgTimeToFirstLabelHours < 0 {
		return fmt.Errorf("negative avg time to first label: %.2f", p.AvgTimeToFirstLabelHours)
	}
	if p.NextWeekPredictedIssues < 0 {
		return fmt.Errorf("negative predicted issue count: %d", p.NextWeekPredictedIssues)
	}
	if !p.Severity.Valid() {
		return fmt.Errorf("unknown severity %d", p.Severity)
	}
	return nil
}

func (d DoraMetrics) validate() error {
	if d.LeadTimeForChangesHours < 0 {
		return fmt.Errorf("negative lead time: %.2f", d.LeadTimeForChangesHours)
	}
	if d.TimeToRestoreServiceHours < 0 {
		return fmt.Errorf("negative restore time: %.2f", d.TimeToRestoreServiceHours)
	}
	return nil
}

func (v TeamVelocity) validate() error {
	if v.TotalStoryPoints < 0 || v.CompletedStoryPoints < 0 {
		return fmt.Errorf("negative story points in sprint %q", v.CurrentSprintName)
	}
	if v.CompletedStoryPoints > v.TotalStoryPoints {
		return fmt.Errorf("sprint %q completed %d exceeds total %d",
			v.CurrentSprintName, v.CompletedStoryPoints, v.TotalStoryPoints)
	}
	if v.SprintCompletionPercentage < 0 || v.SprintCompletionPercentage > 100 {
		return fmt.Errorf("sprint %q completion %.2f outside [0,100]",
			v.CurrentSprintName, v.SprintCompletionPercentage)
	}
	return nil
}

func (s APIStatus) validate() error {
	if s.CallsMade < 0 {
		return fmt.Errorf("negative call count: %d", s.CallsMade)
	}
	if s.RateLimitTotal <= 0 {
		return fmt.Errorf("rate limit total must be positive, got %d", s.RateLimitTotal)
	}
	if s.RateLimitRemaining < 0 || s.RateLimitRemaining > s.RateLimitTotal {
		return fmt.Errorf("rate limit remaining %d outside [0,%d]", s.RateLimitRemaining, s.RateLimitTotal)
	}
	if s.IsRateLimited != (s.RateLimitRemaining == 0) {
		return fmt.Errorf("is_rate_limited=%t inconsistent with remaining=%d", s.IsRateLimited, s.RateLimitRemaining)
	}
	return nil
}

// ResetAt returns the quota reset moment as a time.Time.
func (s APIStatus) ResetAt() time.Time {
	return time.Unix(s.ResetTime, 0).UTC()
}
