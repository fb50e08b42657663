package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/snapcache"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/usecase"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetches one repository health snapshot and outputs it as JSON",
	Long: `Builds the full health snapshot (weekly activity, contributors,
languages, DORA metrics, predictions) for a single repository and prints
it as pretty-printed JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, log, err := setup(cmd, true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()

		owner, _ := cmd.Flags().GetString("owner")
		repo, _ := cmd.Flags().GetString("repo")
		weeks, _ := cmd.Flags().GetInt("weeks")
		if weeks == 0 {
			weeks = cfg.DefaultWeeks
		}

		provider, err := buildProvider(cfg, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create snapshot provider: %v\n", err)
			os.Exit(1)
		}

		cache := snapcache.New(cfg.CacheTTL)
		defer cache.Stop()
		snapshots := usecase.NewSnapshotService(provider, cache, cfg.FetchTimeout, log)

		snapshot, err := snapshots.Get(ctx, owner, repo, weeks)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch snapshot: %v\n", err)
			os.Exit(1)
		}

		jsonData, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal snapshot to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringP("owner", "o", "", "Repository owner (required)")
	fetchCmd.Flags().StringP("repo", "r", "", "Repository name (required)")
	fetchCmd.MarkFlagRequired("owner")
	fetchCmd.MarkFlagRequired("repo")
	fetchCmd.Flags().IntP("weeks", "w", 0, "Trailing weeks of history (0 = configured default)")
}
