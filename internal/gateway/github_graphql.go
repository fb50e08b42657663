package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/shurcooL/githubv4"
)

// prSearchQuery covers all three pull request searches, which differ
// only in their search qualifiers.
type prSearchQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Edges []struct {
			Node struct {
				Typename    string `graphql:"__typename"`
				PullRequest struct {
					CreatedAt githubv4.DateTime
					MergedAt  githubv4.DateTime
					ClosedAt  githubv4.DateTime
					Merged    githubv4.Boolean
				} `graphql:"... on PullRequest"`
			}
		}
	} `graphql:"search(query: $query, type: ISSUE, first: 100, after: $cursor)"`
}

// issueSearchQuery pulls issue lifecycle timestamps plus the first
// labeling event for triage latency.
type issueSearchQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Edges []struct {
			Node struct {
				Typename string `graphql:"__typename"`
				Issue    struct {
					CreatedAt     githubv4.DateTime
					ClosedAt      githubv4.DateTime
					Closed        githubv4.Boolean
					TimelineItems struct {
						Nodes []struct {
							LabeledEvent struct {
								CreatedAt githubv4.DateTime
							} `graphql:"... on LabeledEvent"`
						}
					} `graphql:"timelineItems(itemTypes: [LABELED_EVENT], first: 1)"`
				} `graphql:"... on Issue"`
			}
		}
	} `graphql:"search(query: $query, type: ISSUE, first: 100, after: $cursor)"`
}

// milestoneQuery selects the open milestone with the nearest due date.
type milestoneQuery struct {
	Repository struct {
		Milestones struct {
			Nodes []struct {
				Title              githubv4.String
				ProgressPercentage githubv4.Float
				Issues             struct {
					TotalCount githubv4.Int
				} `graphql:"issues(first: 1)"`
			}
		} `graphql:"milestones(first: 1, states: [OPEN], orderBy: {field: DUE_DATE, direction: ASC})"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// prNode is one pull request flattened out of a search page.
type prNode struct {
	createdAt time.Time
	mergedAt  time.Time
	closedAt  time.Time
	merged    bool
}

// prActivity aggregates the pull request side of a snapshot.
type prActivity struct {
	openedPerWeek  []int
	mergedPerWeek  []int
	leadHours      []float64
	merged         int
	closedUnmerged int
}

// issueActivity aggregates the issue side of a snapshot.
type issueActivity struct {
	openedPerWeek     []int
	opened            int
	closed            int
	labelLatencyHours []float64
	restoreHours      []float64
}

// milestoneInfo is the open milestone backing the velocity panel,
// nil when the repository has none.
type milestoneInfo struct {
	title       string
	progress    float64
	totalIssues int
}

func (g *GitHubGateway) fetchPRActivity(ctx context.Context, owner, repo string, window weekWindow, quota *quotaTracker) (prActivity, error) {
	target := owner + "/" + repo
	since := window.sinceDate()

	opened, err := g.searchPullRequests(ctx,
		fmt.Sprintf("repo:%s is:pr created:>=%s", target, since), target, quota)
	if err != nil {
		return prActivity{}, err
	}
	merged, err := g.searchPullRequests(ctx,
		fmt.Sprintf("repo:%s is:pr is:merged merged:>=%s", target, since), target, quota)
	if err != nil {
		return prActivity{}, err
	}
	abandoned, err := g.searchPullRequests(ctx,
		fmt.Sprintf("repo:%s is:pr is:closed is:unmerged closed:>=%s", target, since), target, quota)
	if err != nil {
		return prActivity{}, err
	}

	activity := prActivity{
		openedPerWeek: make([]int, window.weeks),
		mergedPerWeek: make([]int, window.weeks),
	}
	for _, pr := range opened {
		if i, ok := window.index(pr.createdAt); ok {
			activity.openedPerWeek[i]++
		}
	}
	for _, pr := range merged {
		i, ok := window.index(pr.mergedAt)
		if !ok {
			continue
		}
		activity.mergedPerWeek[i]++
		activity.merged++
		if lead := pr.mergedAt.Sub(pr.createdAt).Hours(); lead >= 0 {
			activity.leadHours = append(activity.leadHours, lead)
		}
	}
	for _, pr := range abandoned {
		if _, ok := window.index(pr.closedAt); ok {
			activity.closedUnmerged++
		}
	}
	return activity, nil
}

func (g *GitHubGateway) searchPullRequests(ctx context.Context, query, target string, quota *quotaTracker) ([]prNode, error) {
	variables := map[string]interface{}{
		"query":  githubv4.String(query),
		"cursor": (*githubv4.String)(nil),
	}

	var nodes []prNode
	for {
		var q prSearchQuery
		quota.recordGraphQL()
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, classifyGitHubError(err, target)
		}
		for _, edge := range q.Search.Edges {
			if edge.Node.Typename != "PullRequest" {
				continue
			}
			pr := edge.Node.PullRequest
			nodes = append(nodes, prNode{
				createdAt: pr.CreatedAt.Time,
				mergedAt:  pr.MergedAt.Time,
				closedAt:  pr.ClosedAt.Time,
				merged:    bool(pr.Merged),
			})
		}
		if !q.Search.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Search.PageInfo.EndCursor)
	}
	return nodes, nil
}

func (g *GitHubGateway) fetchIssueActivity(ctx context.Context, owner, repo string, window weekWindow, quota *quotaTracker) (issueActivity, error) {
	target := owner + "/" + repo
	query := fmt.Sprintf("repo:%s is:issue created:>=%s", target, window.sinceDate())
	variables := map[string]interface{}{
		"query":  githubv4.String(query),
		"cursor": (*githubv4.String)(nil),
	}

	activity := issueActivity{openedPerWeek: make([]int, window.weeks)}
	for {
		var q issueSearchQuery
		quota.recordGraphQL()
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return issueActivity{}, classifyGitHubError(err, target)
		}
		for _, edge := range q.Search.Edges {
			if edge.Node.Typename != "Issue" {
				continue
			}
			issue := edge.Node.Issue
			i, ok := window.index(issue.CreatedAt.Time)
			if !ok {
				continue
			}
			activity.openedPerWeek[i]++
			activity.opened++

			if bool(issue.Closed) && !issue.ClosedAt.Time.IsZero() {
				if _, inWindow := window.index(issue.ClosedAt.Time); inWindow {
					activity.closed++
					if hours := issue.ClosedAt.Time.Sub(issue.CreatedAt.Time).Hours(); hours >= 0 {
						activity.restoreHours = append(activity.restoreHours, hours)
					}
				}
			}
			for _, item := range issue.TimelineItems.Nodes {
				labeledAt := item.LabeledEvent.CreatedAt.Time
				if labeledAt.IsZero() {
					continue
				}
				if latency := labeledAt.Sub(issue.CreatedAt.Time).Hours(); latency >= 0 {
					activity.labelLatencyHours = append(activity.labelLatencyHours, latency)
				}
			}
		}
		if !q.Search.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Search.PageInfo.EndCursor)
	}
	return activity, nil
}

func (g *GitHubGateway) fetchCurrentMilestone(ctx context.Context, owner, repo string, quota *quotaTracker) (*milestoneInfo, error) {
	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
	}

	var q milestoneQuery
	quota.recordGraphQL()
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, classifyGitHubError(err, owner+"/"+repo)
	}
	if len(q.Repository.Milestones.Nodes) == 0 {
		return nil, nil
	}

	node := q.Repository.Milestones.Nodes[0]
	return &milestoneInfo{
		title:       string(node.Title),
		progress:    float64(node.ProgressPercentage),
		totalIssues: int(node.Issues.TotalCount),
	}, nil
}
