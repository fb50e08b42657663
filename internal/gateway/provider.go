// Package gateway provides the data providers behind the dashboard: a
// deterministic sample generator and a live GitHub implementation built
// on the REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/apperr"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
)

// Provider fetches one health snapshot covering the trailing number of
// weeks. Implementations clamp weeks above domain.MaxWeeks instead of
// rejecting and honor context cancellation.
type Provider interface {
	Fetch(ctx context.Context, owner, repo string, weeks int) (*domain.ProjectData, error)
}

var (
	ownerPattern = regexp.MustCompile(`^[A-Za-z0-9]+(?:-[A-Za-z0-9]+)*$`)
	repoPattern  = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,100}$`)
)

// ValidateTarget checks owner and repo against GitHub naming rules.
func ValidateTarget(owner, repo string) error {
	fields := map[string]error{}
	if len(owner) > 39 || !ownerPattern.MatchString(owner) {
		fields["owner"] = fmt.Errorf("invalid owner %q", owner)
	}
	if !repoPattern.MatchString(repo) || repo == "." || repo == ".." {
		fields["repo"] = fmt.Errorf("invalid repository name %q", repo)
	}
	if len(fields) > 0 {
		return apperr.InvalidArgument("invalid repository target", fields)
	}
	return nil
}

// ClampWeeks validates the requested window. Non-positive values are
// rejected, values above the cap are clamped down to domain.MaxWeeks.
func ClampWeeks(weeks int) (int, error) {
	if weeks < 1 {
		return 0, apperr.InvalidArgument("weeks must be positive", map[string]error{
			"weeks": fmt.Errorf("got %d", weeks),
		})
	}
	if weeks > domain.MaxWeeks {
		return domain.MaxWeeks, nil
	}
	return weeks, nil
}
