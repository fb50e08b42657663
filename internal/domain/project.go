package domain

import (
	"fmt"
	"time"
)

// MaxWeeks caps the history window a snapshot may cover. Providers clamp
// larger requests down to this value rather than rejecting them.
const MaxWeeks = 104

// ProjectData is one fetched snapshot of a repository's health. All five
// weekly series run oldest to newest and have exactly Weeks entries.
type ProjectData struct {
	Owner    string       `json:"owner"`
	Name     string       `json:"name"`
	FullName string       `json:"full_name"`
	Overview RepoOverview `json:"overview"`

	WeeklyCommits   []int `json:"weekly_commits"`
	WeeklyPRsOpened []int `json:"weekly_prs_opened"`
	WeeklyPRsMerged []int `json:"weekly_prs_merged"`
	WeeklyAdditions []int `json:"weekly_additions"`
	WeeklyDeletions []int `json:"weekly_deletions"`

	Contributors []Contributor   `json:"contributors"`
	Languages    []LanguageMetric `json:"languages"`
	Prediction   IssuePrediction `json:"prediction"`
	Dora         DoraMetrics     `json:"dora"`
	Velocity     TeamVelocity    `json:"velocity"`
	APIStatus    APIStatus       `json:"api_status"`

	Weeks     int       `json:"weeks"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Validate checks the structural invariants of a snapshot: series lengths
// match the declared window, counters are non-negative, percentages stay
// in [0,100] and the rate-limit flag agrees with the remaining quota.
func (p *ProjectData) Validate() error {
	if p == nil {
		return fmt.Errorf("nil project data")
	}
	if p.Owner == "" || p.Name == "" {
		return fmt.Errorf("owner and name must be set")
	}
	if want := p.Owner + "/" + p.Name; p.FullName != want {
		return fmt.Errorf("full name %q does not match %q", p.FullName, want)
	}
	if p.Weeks < 1 || p.Weeks > MaxWeeks {
		return fmt.Errorf("weeks %d outside [1,%d]", p.Weeks, MaxWeeks)
	}

	series := []struct {
		name   string
		values []int
	}{
		{"weekly_commits", p.WeeklyCommits},
		{"weekly_prs_opened", p.WeeklyPRsOpened},
		{"weekly_prs_merged", p.WeeklyPRsMerged},
		{"weekly_additions", p.WeeklyAdditions},
		{"weekly_deletions", p.WeeklyDeletions},
	}
	for _, s := range series {
		if len(s.values) != p.Weeks {
			return fmt.Errorf("%s has %d entries, want %d", s.name, len(s.values), p.Weeks)
		}
		for i, v := range s.values {
			if v < 0 {
				return fmt.Errorf("%s[%d] is negative: %d", s.name, i, v)
			}
		}
	}

	if p.Overview.Stars < 0 || p.Overview.Forks < 0 || p.Overview.OpenIssues < 0 || p.Overview.Watchers < 0 {
		return fmt.Errorf("overview counters must be non-negative")
	}
	if p.Overview.TriageScore < 0 || p.Overview.TriageScore > 100 {
		return fmt.Errorf("triage score %.2f outside [0,100]", p.Overview.TriageScore)
	}
	for _, c := range p.Contributors {
		if err := c.validate(); err != nil {
			return err
		}
	}
	for _, l := range p.Languages {
		if err := l.validate(); err != nil {
			return err
		}
	}
	if err := p.Prediction.validate(); err != nil {
		return err
	}
	if err := p.Dora.validate(); err != nil {
		return err
	}
	if err := p.Velocity.validate(); err != nil {
		return err
	}
	if err := p.APIStatus.validate(); err != nil {
		return err
	}
	return nil
}

// SeriesFor returns the weekly series selected by key, or false when the
// key does not name a series metric.
func (p *ProjectData) SeriesFor(key ComparisonKey) ([]int, bool) {
	switch key {
	case KeyWeeklyCommits:
		return p.WeeklyCommits, true
	case KeyWeeklyPRsOpened:
		return p.WeeklyPRsOpened, true
	case KeyWeeklyPRsMerged:
		return p.WeeklyPRsMerged, true
	case KeyWeeklyAdditions:
		return p.WeeklyAdditions, true
	case KeyWeeklyDeletions:
		return p.WeeklyDeletions, true
	}
	return nil, false
}

// ScalarFor returns the scalar metric selected by key, or false when the
// key does not name a scalar metric.
func (p *ProjectData) ScalarFor(key ComparisonKey) (float64, bool) {
	switch key {
	case KeyStars:
		return float64(p.Overview.Stars), true
	case KeyForks:
		return float64(p.Overview.Forks), true
	case KeyOpenIssues:
		return float64(p.Overview.OpenIssues), true
	case KeyTriageScore:
		return p.Overview.TriageScore, true
	case KeyLeadTimeHours:
		return p.Dora.LeadTimeForChangesHours, true
	case KeySprintCompletion:
		return p.Velocity.SprintCompletionPercentage, true
	}
	return 0, false
}
