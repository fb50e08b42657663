package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/server"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/snapcache"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/usecase"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/watchlist"
)

const schemaTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the dashboard HTTP API",
	Long: `Serves repository health snapshots, the comparison view and the
watchlist over HTTP, with the swagger UI mounted at /swagger/index.html.

The watchlist needs DATABASE_URL; without it the server still runs and
its watchlist endpoints answer 502.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log, err := setup(cmd, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()

		provider, err := buildProvider(cfg, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create snapshot provider: %v\n", err)
			os.Exit(1)
		}

		cache := snapcache.New(cfg.CacheTTL)
		defer cache.Stop()
		snapshots := usecase.NewSnapshotService(provider, cache, cfg.FetchTimeout, log)
		comparison := usecase.NewComparisonController(log)

		var (
			store     *watchlist.Store
			refresher *watchlist.Refresher
		)
		if cfg.WatchlistEnabled() {
			store, err = watchlist.Open(cfg.DatabaseURL, log)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to open the watchlist database: %v\n", err)
				os.Exit(1)
			}
			defer store.Close()

			schemaCtx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
			err = store.EnsureSchema(schemaCtx)
			cancel()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to prepare the watchlist schema: %v\n", err)
				os.Exit(1)
			}

			refresher, err = watchlist.NewRefresher(store, snapshots, cfg.RefreshCron, log)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to schedule the watchlist refresher: %v\n", err)
				os.Exit(1)
			}
			refresher.Start()
			defer refresher.Stop()
		} else {
			log.Info("DATABASE_URL not set, watchlist endpoints disabled")
		}

		srv := server.New(*cfg, snapshots, comparison, cache, store, refresher, log)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			log.Error("server stopped", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
