package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/apperr"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
)

func (s *Server) respondError(c *gin.Context, err error) {
	appErr := apperr.From(err)

	body := gin.H{"error": appErr.Msg, "kind": string(appErr.Kind)}
	if !appErr.ResetAt.IsZero() {
		if retry := int(time.Until(appErr.ResetAt).Seconds()); retry > 0 {
			body["retry_after"] = retry
		}
	}
	c.JSON(appErr.HTTPStatus, body)
}

func (s *Server) weeksParam(c *gin.Context) (int, error) {
	raw := c.Query("weeks")
	if raw == "" {
		return s.cfg.DefaultWeeks, nil
	}
	weeks, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.InvalidArgument("weeks must be an integer", map[string]error{
			"weeks": err,
		})
	}
	return weeks, nil
}

// handleHealth reports liveness, the active provider and cache statistics.
//
//	@Summary	Service health
//	@Tags		meta
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Router		/health [get]
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"provider":       s.cfg.Provider,
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
		"cache":          s.cache.Stats(),
	})
}

// handleGetProject returns the full health snapshot for one repository.
//
//	@Summary	Fetch a repository health snapshot
//	@Tags		projects
//	@Produce	json
//	@Param		owner	path	string	true	"Repository owner"
//	@Param		repo	path	string	true	"Repository name"
//	@Param		weeks	query	int		false	"Trailing weeks of history"
//	@Success	200	{object}	domain.ProjectData
//	@Failure	400	{object}	map[string]any
//	@Failure	404	{object}	map[string]any
//	@Router		/api/v1/projects/{owner}/{repo} [get]
func (s *Server) handleGetProject(c *gin.Context) {
	weeks, err := s.weeksParam(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	snapshot, err := s.snapshots.Get(c.Request.Context(), c.Param("owner"), c.Param("repo"), weeks)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// handleGetProjectStatus returns only the upstream quota slice of a
// snapshot, for the dashboard's API meter.
//
//	@Summary	Fetch upstream API quota for a repository
//	@Tags		projects
//	@Produce	json
//	@Param		owner	path	string	true	"Repository owner"
//	@Param		repo	path	string	true	"Repository name"
//	@Param		weeks	query	int		false	"Trailing weeks of history"
//	@Success	200	{object}	domain.APIStatus
//	@Router		/api/v1/projects/{owner}/{repo}/status [get]
func (s *Server) handleGetProjectStatus(c *gin.Context) {
	weeks, err := s.weeksParam(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	snapshot, err := s.snapshots.Get(c.Request.Context(), c.Param("owner"), c.Param("repo"), weeks)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot.APIStatus)
}

type comparisonRequest struct {
	OwnerA string `json:"owner_a" binding:"required"`
	RepoA  string `json:"repo_a" binding:"required"`
	OwnerB string `json:"owner_b" binding:"required"`
	RepoB  string `json:"repo_b" binding:"required"`
	Weeks  int    `json:"weeks"`
	Key    string `json:"key"`
}

// handleLoadComparison fetches both sides of a comparison and returns
// the rendered chart encoding.
//
//	@Summary	Load two repositories into the comparison view
//	@Tags		comparison
//	@Accept		json
//	@Produce	json
//	@Param		request	body	comparisonRequest	true	"Repositories to compare"
//	@Success	200	{object}	domain.ChartEncoding
//	@Failure	400	{object}	map[string]any
//	@Router		/api/v1/comparison [post]
func (s *Server) handleLoadComparison(c *gin.Context) {
	var req comparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, apperr.InvalidArgument("invalid comparison request", map[string]error{
			"body": err,
		}))
		return
	}
	if req.Weeks == 0 {
		req.Weeks = s.cfg.DefaultWeeks
	}
	if req.Key != "" {
		if err := s.comparison.SetKey(domain.ComparisonKey(req.Key)); err != nil {
			s.respondError(c, err)
			return
		}
	}

	var snapA, snapB *domain.ProjectData
	eg, ctx := errgroup.WithContext(c.Request.Context())
	eg.Go(func() error {
		var err error
		snapA, err = s.snapshots.Get(ctx, req.OwnerA, req.RepoA, req.Weeks)
		return err
	})
	eg.Go(func() error {
		var err error
		snapB, err = s.snapshots.Get(ctx, req.OwnerB, req.RepoB, req.Weeks)
		return err
	})
	if err := eg.Wait(); err != nil {
		s.respondError(c, err)
		return
	}

	s.comparison.SetRepoA(snapA)
	s.comparison.SetRepoB(snapB)

	encoding, ok := s.comparison.Render()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, encoding)
}

// handleGetComparison re-renders the current comparison. An incomplete
// view is not an error, it is 204.
//
//	@Summary	Render the current comparison
//	@Tags		comparison
//	@Produce	json
//	@Success	200	{object}	domain.ChartEncoding
//	@Success	204	{string}	string	"comparison incomplete"
//	@Router		/api/v1/comparison [get]
func (s *Server) handleGetComparison(c *gin.Context) {
	encoding, ok := s.comparison.Render()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, encoding)
}

type keyRequest struct {
	Key string `json:"key" binding:"required"`
}

// handleSetComparisonKey switches the charted metric and re-renders.
//
//	@Summary	Select the comparison metric
//	@Tags		comparison
//	@Accept		json
//	@Produce	json
//	@Param		request	body	keyRequest	true	"Comparison key"
//	@Success	200	{object}	domain.ChartEncoding
//	@Success	204	{string}	string	"comparison incomplete"
//	@Failure	400	{object}	map[string]any
//	@Router		/api/v1/comparison/key [put]
func (s *Server) handleSetComparisonKey(c *gin.Context) {
	var req keyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, apperr.InvalidArgument("invalid key request", map[string]error{
			"body": err,
		}))
		return
	}

	if err := s.comparison.SetKey(domain.ComparisonKey(req.Key)); err != nil {
		s.respondError(c, err)
		return
	}

	encoding, ok := s.comparison.Render()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, encoding)
}

// handleClearComparison empties both slots.
//
//	@Summary	Clear the comparison view
//	@Tags		comparison
//	@Success	204	{string}	string	""
//	@Router		/api/v1/comparison [delete]
func (s *Server) handleClearComparison(c *gin.Context) {
	s.comparison.Clear()
	c.Status(http.StatusNoContent)
}

type comparisonKeyInfo struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Series bool   `json:"series"`
}

// handleListComparisonKeys lists the metrics the comparison view accepts.
//
//	@Summary	List comparison keys
//	@Tags		comparison
//	@Produce	json
//	@Success	200	{array}	comparisonKeyInfo
//	@Router		/api/v1/comparison/keys [get]
func (s *Server) handleListComparisonKeys(c *gin.Context) {
	keys := domain.ComparisonKeys()
	out := make([]comparisonKeyInfo, 0, len(keys))
	for _, key := range keys {
		out = append(out, comparisonKeyInfo{
			Key:    string(key),
			Title:  key.Title(),
			Series: key.IsSeries(),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) watchlistEnabled(c *gin.Context) bool {
	if s.watch == nil {
		s.respondError(c, apperr.UpstreamUnavailable("watchlist storage is not configured", nil))
		return false
	}
	return true
}

// handleListWatchlist returns every watched repository.
//
//	@Summary	List watched repositories
//	@Tags		watchlist
//	@Produce	json
//	@Success	200	{array}	watchlist.WatchedRepo
//	@Router		/api/v1/watchlist [get]
func (s *Server) handleListWatchlist(c *gin.Context) {
	if !s.watchlistEnabled(c) {
		return
	}

	entries, err := s.watch.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type watchRequest struct {
	Owner string `json:"owner" binding:"required"`
	Repo  string `json:"repo" binding:"required"`
	Weeks int    `json:"weeks"`
	Note  string `json:"note"`
}

// handleWatch adds a repository to the watchlist.
//
//	@Summary	Watch a repository
//	@Tags		watchlist
//	@Accept		json
//	@Produce	json
//	@Param		request	body	watchRequest	true	"Repository to watch"
//	@Success	201	{object}	watchlist.WatchedRepo
//	@Failure	400	{object}	map[string]any
//	@Router		/api/v1/watchlist [post]
func (s *Server) handleWatch(c *gin.Context) {
	if !s.watchlistEnabled(c) {
		return
	}

	var req watchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, apperr.InvalidArgument("invalid watch request", map[string]error{
			"body": err,
		}))
		return
	}
	if req.Weeks == 0 {
		req.Weeks = s.cfg.DefaultWeeks
	}

	entry, err := s.watch.Add(c.Request.Context(), req.Owner, req.Repo, req.Weeks, req.Note)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// handleUnwatch removes a repository from the watchlist.
//
//	@Summary	Unwatch a repository
//	@Tags		watchlist
//	@Param		owner	path	string	true	"Repository owner"
//	@Param		repo	path	string	true	"Repository name"
//	@Success	204	{string}	string	""
//	@Failure	404	{object}	map[string]any
//	@Router		/api/v1/watchlist/{owner}/{repo} [delete]
func (s *Server) handleUnwatch(c *gin.Context) {
	if !s.watchlistEnabled(c) {
		return
	}

	if err := s.watch.Remove(c.Request.Context(), c.Param("owner"), c.Param("repo")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleRefreshWatchlist rebuilds every watched snapshot immediately.
//
//	@Summary	Refresh all watched repositories now
//	@Tags		watchlist
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Router		/api/v1/watchlist/refresh [post]
func (s *Server) handleRefreshWatchlist(c *gin.Context) {
	if !s.watchlistEnabled(c) {
		return
	}
	if s.refresher == nil {
		s.respondError(c, apperr.UpstreamUnavailable("watchlist refresher is not running", nil))
		return
	}

	refreshed, err := s.refresher.RunOnce(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refreshed": refreshed})
}
