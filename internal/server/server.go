// Package server exposes the dashboard over HTTP: snapshot reads, the
// shared comparison view, the watchlist, and the swagger UI.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/docs"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/config"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/snapcache"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/usecase"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/watchlist"
)

const shutdownTimeout = 15 * time.Second

// Server wires the services into a gin engine. The watchlist pieces are
// nil when no database is configured; their endpoints then answer 502.
type Server struct {
	cfg        config.Config
	engine     *gin.Engine
	snapshots  *usecase.SnapshotService
	comparison *usecase.ComparisonController
	cache      *snapcache.Cache
	watch      *watchlist.Store
	refresher  *watchlist.Refresher
	logger     *zap.Logger
	startedAt  time.Time
}

// New builds the engine with the middleware chain and all routes
// registered.
func New(
	cfg config.Config,
	snapshots *usecase.SnapshotService,
	comparison *usecase.ComparisonController,
	cache *snapcache.Cache,
	watch *watchlist.Store,
	refresher *watchlist.Refresher,
	logger *zap.Logger,
) *Server {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		RequestLogger(logger),
		Recovery(logger),
		CORS(cfg.CORSOrigins),
		RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger),
	)

	s := &Server{
		cfg:        cfg,
		engine:     engine,
		snapshots:  snapshots,
		comparison: comparison,
		cache:      cache,
		watch:      watch,
		refresher:  refresher,
		logger:     logger,
		startedAt:  time.Now(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := s.engine.Group("/api/v1")

	api.GET("/projects/:owner/:repo", s.handleGetProject)
	api.GET("/projects/:owner/:repo/status", s.handleGetProjectStatus)

	api.GET("/comparison", s.handleGetComparison)
	api.POST("/comparison", s.handleLoadComparison)
	api.PUT("/comparison/key", s.handleSetComparisonKey)
	api.DELETE("/comparison", s.handleClearComparison)
	api.GET("/comparison/keys", s.handleListComparisonKeys)

	api.GET("/watchlist", s.handleListWatchlist)
	api.POST("/watchlist", s.handleWatch)
	api.DELETE("/watchlist/:owner/:repo", s.handleUnwatch)
	api.POST("/watchlist/refresh", s.handleRefreshWatchlist)
}

// Handler exposes the engine, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
