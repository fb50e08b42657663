package domain

import (
	"fmt"
	"sort"
)

// ComparisonKey names one metric the comparison view can chart. The set
// is closed: ParseComparisonKey rejects anything not declared here.
type ComparisonKey string

const (
	KeyWeeklyCommits    ComparisonKey = "weekly_commits"
	KeyWeeklyPRsOpened  ComparisonKey = "weekly_pr_opened"
	KeyWeeklyPRsMerged  ComparisonKey = "weekly_pr_merged"
	KeyWeeklyAdditions  ComparisonKey = "weekly_additions"
	KeyWeeklyDeletions  ComparisonKey = "weekly_deletions"
	KeyStars            ComparisonKey = "stars"
	KeyForks            ComparisonKey = "forks"
	KeyOpenIssues       ComparisonKey = "open_issues"
	KeyTriageScore      ComparisonKey = "triage_score"
	KeyLeadTimeHours    ComparisonKey = "lead_time_hours"
	KeySprintCompletion ComparisonKey = "sprint_completion"
)

var comparisonKeyTitles = map[ComparisonKey]string{
	KeyWeeklyCommits:    "Commits per week",
	KeyWeeklyPRsOpened:  "Pull requests opened per week",
	KeyWeeklyPRsMerged:  "Pull requests merged per week",
	KeyWeeklyAdditions:  "Lines added per week",
	KeyWeeklyDeletions:  "Lines deleted per week",
	KeyStars:            "Stars",
	KeyForks:            "Forks",
	KeyOpenIssues:       "Open issues",
	KeyTriageScore:      "Triage score",
	KeyLeadTimeHours:    "Lead time for changes (hours)",
	KeySprintCompletion: "Sprint completion (%)",
}

// Valid reports whether k is one of the declared comparison keys.
func (k ComparisonKey) Valid() bool {
	_, ok := comparisonKeyTitles[k]
	return ok
}

// IsSeries reports whether k selects a weekly series rather than a scalar.
func (k ComparisonKey) IsSeries() bool {
	switch k {
	case KeyWeeklyCommits, KeyWeeklyPRsOpened, KeyWeeklyPRsMerged, KeyWeeklyAdditions, KeyWeeklyDeletions:
		return true
	}
	return false
}

// Title returns the human-readable chart title for k.
func (k ComparisonKey) Title() string {
	return comparisonKeyTitles[k]
}

// ParseComparisonKey validates a wire value against the closed key set.
func ParseComparisonKey(raw string) (ComparisonKey, error) {
	k := ComparisonKey(raw)
	if !k.Valid() {
		return "", fmt.Errorf("unknown comparison key %q", raw)
	}
	return k, nil
}

// ComparisonKeys lists every declared key in stable order.
func ComparisonKeys() []ComparisonKey {
	keys := make([]ComparisonKey, 0, len(comparisonKeyTitles))
	for k := range comparisonKeyTitles {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ChartKind distinguishes the two chart shapes the comparison view renders.
type ChartKind string

const (
	ChartKindSeries ChartKind = "series"
	ChartKindScalar ChartKind = "scalar"
)

// ChartSeries is one repository's line (or bar) in a comparison chart.
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ChartEncoding is a render-ready description of a comparison chart:
// a shared label axis plus one series per repository.
type ChartEncoding struct {
	Kind   ChartKind     `json:"kind"`
	Key    ComparisonKey `json:"key"`
	Title  string        `json:"title"`
	Labels []string      `json:"labels"`
	Series []ChartSeries `json:"series"`
}

// WeekLabels builds the shared x-axis for an n-week series chart,
// "W1" oldest through "Wn" newest.
func WeekLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("W%d", i+1)
	}
	return labels
}

// IntSeries converts a weekly counter series into chart values.
func IntSeries(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
