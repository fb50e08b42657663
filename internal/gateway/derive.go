package gateway

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
)

// The live provider derives its composite figures from measured activity
// only. Nothing here extrapolates beyond simple means over the window.

func deriveDora(prs prActivity, issues issueActivity, weeks int) domain.DoraMetrics {
	frequency := float64(prs.merged) / float64(weeks)

	failureRate := "0.0%"
	if denom := prs.merged + prs.closedUnmerged; denom > 0 {
		failureRate = fmt.Sprintf("%.1f%%", 100*float64(prs.closedUnmerged)/float64(denom))
	}

	return domain.DoraMetrics{
		DeploymentFrequency:       fmt.Sprintf("%.1f per week", frequency),
		LeadTimeForChangesHours:   round1(meanOrZero(prs.leadHours)),
		TimeToRestoreServiceHours: round1(meanOrZero(issues.restoreHours)),
		ChangeFailureRate:         failureRate,
	}
}

func derivePrediction(issues issueActivity) domain.IssuePrediction {
	avgLabel := round1(meanOrZero(issues.labelLatencyHours))

	// Next week is guessed as the mean of the trailing four weeks of
	// newly opened issues.
	tail := issues.openedPerWeek
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	predicted := int(math.Round(meanOrZero(domain.IntSeries(tail))))

	return domain.IssuePrediction{
		AvgTimeToFirstLabelHours: avgLabel,
		Severity:                 deriveSeverity(issues, avgLabel),
		NextWeekPredictedIssues:  predicted,
	}
}

func deriveSeverity(issues issueActivity, avgLabelHours float64) domain.Severity {
	unresolved := unresolvedShare(issues)
	switch {
	case unresolved > 0.75 && avgLabelHours > 48:
		return domain.SeverityHigh
	case unresolved > 0.5 || avgLabelHours > 24:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

// deriveTriageScore grades triage health in [0,100]. Slow first labeling
// and a growing unresolved backlog each cost up to half the score.
func deriveTriageScore(issues issueActivity) float64 {
	labelPenalty := math.Min(50, meanOrZero(issues.labelLatencyHours)/2)
	backlogPenalty := 50 * unresolvedShare(issues)

	score := 100 - labelPenalty - backlogPenalty
	if score < 0 {
		score = 0
	}
	return round1(score)
}

func unresolvedShare(issues issueActivity) float64 {
	if issues.opened == 0 {
		return 0
	}
	return float64(issues.opened-issues.closed) / float64(issues.opened)
}

func deriveVelocity(milestone *milestoneInfo) domain.TeamVelocity {
	if milestone == nil {
		return domain.TeamVelocity{CurrentSprintName: "No active milestone"}
	}

	progress := milestone.progress
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	total := milestone.totalIssues
	if total < 0 {
		total = 0
	}
	completed := int(math.Round(float64(total) * progress / 100))

	return domain.TeamVelocity{
		CurrentSprintName:          milestone.title,
		TotalStoryPoints:           total,
		CompletedStoryPoints:       completed,
		SprintCompletionPercentage: round1(progress),
	}
}

func meanOrZero(values []float64) float64 {
	mean, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return mean
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
