package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
)

func TestDeriveDora(t *testing.T) {
	testCases := []struct {
		name   string
		prs    prActivity
		issues issueActivity
		weeks  int
		want   domain.DoraMetrics
	}{
		{
			name: "steady delivery",
			prs: prActivity{
				merged:         8,
				closedUnmerged: 2,
				leadHours:      []float64{20, 28},
			},
			issues: issueActivity{restoreHours: []float64{2, 4}},
			weeks:  4,
			want: domain.DoraMetrics{
				DeploymentFrequency:       "2.0 per week",
				LeadTimeForChangesHours:   24,
				TimeToRestoreServiceHours: 3,
				ChangeFailureRate:         "20.0%",
			},
		},
		{
			name:   "no activity at all",
			prs:    prActivity{},
			issues: issueActivity{},
			weeks:  12,
			want: domain.DoraMetrics{
				DeploymentFrequency:       "0.0 per week",
				LeadTimeForChangesHours:   0,
				TimeToRestoreServiceHours: 0,
				ChangeFailureRate:         "0.0%",
			},
		},
		{
			name:  "every closed pr abandoned",
			prs:   prActivity{closedUnmerged: 3},
			weeks: 2,
			want: domain.DoraMetrics{
				DeploymentFrequency:       "0.0 per week",
				LeadTimeForChangesHours:   0,
				TimeToRestoreServiceHours: 0,
				ChangeFailureRate:         "100.0%",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, deriveDora(tc.prs, tc.issues, tc.weeks))
		})
	}
}

func TestDerivePrediction(t *testing.T) {
	testCases := []struct {
		name   string
		issues issueActivity
		want   domain.IssuePrediction
	}{
		{
			name: "prediction uses trailing four weeks",
			issues: issueActivity{
				openedPerWeek:     []int{40, 40, 2, 4, 2, 4},
				opened:            92,
				closed:            90,
				labelLatencyHours: []float64{2, 4},
			},
			want: domain.IssuePrediction{
				AvgTimeToFirstLabelHours: 3,
				Severity:                 domain.SeverityLow,
				NextWeekPredictedIssues:  3,
			},
		},
		{
			name: "slow labeling alone raises severity",
			issues: issueActivity{
				openedPerWeek:     []int{1, 1},
				opened:            2,
				closed:            2,
				labelLatencyHours: []float64{30},
			},
			want: domain.IssuePrediction{
				AvgTimeToFirstLabelHours: 30,
				Severity:                 domain.SeverityMedium,
				NextWeekPredictedIssues:  1,
			},
		},
		{
			name: "neglected backlog with slow labeling is high",
			issues: issueActivity{
				openedPerWeek:     []int{10, 10, 10, 10},
				opened:            40,
				closed:            2,
				labelLatencyHours: []float64{72},
			},
			want: domain.IssuePrediction{
				AvgTimeToFirstLabelHours: 72,
				Severity:                 domain.SeverityHigh,
				NextWeekPredictedIssues:  10,
			},
		},
		{
			name:   "no issues",
			issues: issueActivity{openedPerWeek: []int{0, 0, 0}},
			want: domain.IssuePrediction{
				AvgTimeToFirstLabelHours: 0,
				Severity:                 domain.SeverityLow,
				NextWeekPredictedIssues:  0,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, derivePrediction(tc.issues))
		})
	}
}

func TestDeriveTriageScore(t *testing.T) {
	testCases := []struct {
		name   string
		issues issueActivity
		want   float64
	}{
		{name: "no issues scores perfect", issues: issueActivity{}, want: 100},
		{
			name:   "fast labels and full resolution",
			issues: issueActivity{opened: 10, closed: 10, labelLatencyHours: []float64{1, 3}},
			want:   99,
		},
		{
			name:   "half the backlog unresolved",
			issues: issueActivity{opened: 10, closed: 5, labelLatencyHours: []float64{3}},
			want:   73.5,
		},
		{
			name:   "worst case bottoms out at zero",
			issues: issueActivity{opened: 10, closed: 0, labelLatencyHours: []float64{400}},
			want:   0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score := deriveTriageScore(tc.issues)
			assert.Equal(t, tc.want, score)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		})
	}
}

func TestDeriveVelocity(t *testing.T) {
	testCases := []struct {
		name      string
		milestone *milestoneInfo
		want      domain.TeamVelocity
	}{
		{
			name:      "no open milestone",
			milestone: nil,
			want:      domain.TeamVelocity{CurrentSprintName: "No active milestone"},
		},
		{
			name:      "half done",
			milestone: &milestoneInfo{title: "Sprint 24", progress: 50, totalIssues: 10},
			want: domain.TeamVelocity{
				CurrentSprintName:          "Sprint 24",
				TotalStoryPoints:           10,
				CompletedStoryPoints:       5,
				SprintCompletionPercentage: 50,
			},
		},
		{
			name:      "progress above hundred is clamped",
			milestone: &milestoneInfo{title: "v2.0", progress: 130, totalIssues: 8},
			want: domain.TeamVelocity{
				CurrentSprintName:          "v2.0",
				TotalStoryPoints:           8,
				CompletedStoryPoints:       8,
				SprintCompletionPercentage: 100,
			},
		},
		{
			name:      "empty milestone",
			milestone: &milestoneInfo{title: "Backlog", progress: 0, totalIssues: 0},
			want:      domain.TeamVelocity{CurrentSprintName: "Backlog"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			velocity := deriveVelocity(tc.milestone)
			assert.Equal(t, tc.want, velocity)
			assert.LessOrEqual(t, velocity.CompletedStoryPoints, velocity.TotalStoryPoints)
		})
	}
}
