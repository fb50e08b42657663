package usecase

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/apperr"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
)

// ComparisonState is a point-in-time view of the comparison slots.
// The snapshots are shared read-only, not copied.
type ComparisonState struct {
	RepoA *domain.ProjectData  `json:"repo_a,omitempty"`
	RepoB *domain.ProjectData  `json:"repo_b,omitempty"`
	Key   domain.ComparisonKey `json:"key"`
}

// Complete reports whether both slots are filled.
func (s ComparisonState) Complete() bool {
	return s.RepoA != nil && s.RepoB != nil
}

// ComparisonController holds the two snapshots under comparison and the
// selected metric, and renders them into a chart encoding. It is safe
// for concurrent use by the HTTP handlers.
type ComparisonController struct {
	mu     sync.RWMutex
	repoA  *domain.ProjectData
	repoB  *domain.ProjectData
	key    domain.ComparisonKey
	logger *zap.Logger
}

// NewComparisonController starts with empty slots and weekly commits
// selected.
func NewComparisonController(logger *zap.Logger) *ComparisonController {
	return &ComparisonController{
		key:    domain.KeyWeeklyCommits,
		logger: logger,
	}
}

// SetRepoA fills (or with nil clears) the first slot.
func (c *ComparisonController) SetRepoA(snapshot *domain.ProjectData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repoA = snapshot
}

// SetRepoB fills (or with nil clears) the second slot.
func (c *ComparisonController) SetRepoB(snapshot *domain.ProjectData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repoB = snapshot
}

// SetKey selects the metric to chart. Keys outside the declared set are
// rejected.
func (c *ComparisonController) SetKey(key domain.ComparisonKey) error {
	if !key.Valid() {
		return apperr.InvalidArgument("unknown comparison key", map[string]error{
			"key": fmt.Errorf("%q is not a comparison key", string(key)),
		})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = key
	return nil
}

// Clear empties both slots and resets the key to weekly commits.
func (c *ComparisonController) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repoA = nil
	c.repoB = nil
	c.key = domain.KeyWeeklyCommits
}

// State returns the current slots and key.
func (c *ComparisonController) State() ComparisonState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ComparisonState{RepoA: c.repoA, RepoB: c.repoB, Key: c.key}
}

// Render encodes the selected metric of both snapshots into a chart.
// While either slot is empty there is nothing to compare and Render
// reports false without complaint.
func (c *ComparisonController) Render() (*domain.ChartEncoding, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.repoA == nil || c.repoB == nil {
		c.logger.Debug("comparison incomplete, skipping render")
		return nil, false
	}

	if c.key.IsSeries() {
		return c.renderSeries(), true
	}
	return c.renderScalar(), true
}

// renderSeries aligns both series on their most recent weeks when the
// windows differ, then charts them over shared week labels.
func (c *ComparisonController) renderSeries() *domain.ChartEncoding {
	seriesA, _ := c.repoA.SeriesFor(c.key)
	seriesB, _ := c.repoB.SeriesFor(c.key)

	n := min(len(seriesA), len(seriesB))
	seriesA = seriesA[len(seriesA)-n:]
	seriesB = seriesB[len(seriesB)-n:]

	return &domain.ChartEncoding{
		Kind:   domain.ChartKindSeries,
		Key:    c.key,
		Title:  c.key.Title(),
		Labels: domain.WeekLabels(n),
		Series: []domain.ChartSeries{
			{Name: c.repoA.FullName, Values: domain.IntSeries(seriesA)},
			{Name: c.repoB.FullName, Values: domain.IntSeries(seriesB)},
		},
	}
}

func (c *ComparisonController) renderScalar() *domain.ChartEncoding {
	valueA, _ := c.repoA.ScalarFor(c.key)
	valueB, _ := c.repoB.ScalarFor(c.key)

	return &domain.ChartEncoding{
		Kind:   domain.ChartKindScalar,
		Key:    c.key,
		Title:  c.key.Title(),
		Labels: []string{c.repoA.FullName, c.repoB.FullName},
		Series: []domain.ChartSeries{
			{Name: c.repoA.FullName, Values: []float64{valueA}},
			{Name: c.repoB.FullName, Values: []float64{valueB}},
		},
	}
}
