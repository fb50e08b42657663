package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/snapcache"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/usecase"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compares a metric across two repositories and outputs the chart as JSON",
	Long: `Fetches health snapshots for two repositories, aligns them on their
most recent weeks and prints the chart encoding for the selected metric
as pretty-printed JSON. The serve command's /api/v1/comparison/keys
route lists the accepted metric keys.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, log, err := setup(cmd, true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()

		repoA, _ := cmd.Flags().GetString("repo-a")
		repoB, _ := cmd.Flags().GetString("repo-b")
		key, _ := cmd.Flags().GetString("key")
		weeks, _ := cmd.Flags().GetInt("weeks")
		if weeks == 0 {
			weeks = cfg.DefaultWeeks
		}

		ownerA, nameA, okA := strings.Cut(repoA, "/")
		ownerB, nameB, okB := strings.Cut(repoB, "/")
		if !okA || !okB {
			fmt.Fprintln(os.Stderr, "Invalid repository reference. Please use the owner/name form.")
			os.Exit(1)
		}

		provider, err := buildProvider(cfg, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create snapshot provider: %v\n", err)
			os.Exit(1)
		}

		cache := snapcache.New(cfg.CacheTTL)
		defer cache.Stop()
		snapshots := usecase.NewSnapshotService(provider, cache, cfg.FetchTimeout, log)

		comparison := usecase.NewComparisonController(log)
		if key != "" {
			if err := comparison.SetKey(domain.ComparisonKey(key)); err != nil {
				fmt.Fprintf(os.Stderr, "Invalid comparison key: %v\n", err)
				os.Exit(1)
			}
		}

		snapA, err := snapshots.Get(ctx, ownerA, nameA, weeks)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch %s: %v\n", repoA, err)
			os.Exit(1)
		}
		snapB, err := snapshots.Get(ctx, ownerB, nameB, weeks)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch %s: %v\n", repoB, err)
			os.Exit(1)
		}

		comparison.SetRepoA(snapA)
		comparison.SetRepoB(snapB)
		encoding, ok := comparison.Render()
		if !ok {
			fmt.Fprintln(os.Stderr, "Comparison is incomplete.")
			os.Exit(1)
		}

		jsonData, err := json.MarshalIndent(encoding, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal chart to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().String("repo-a", "", "First repository as owner/name (required)")
	compareCmd.Flags().String("repo-b", "", "Second repository as owner/name (required)")
	compareCmd.MarkFlagRequired("repo-a")
	compareCmd.MarkFlagRequired("repo-b")
	compareCmd.Flags().StringP("key", "k", "", "Comparison metric key (default weekly_commits)")
	compareCmd.Flags().IntP("weeks", "w", 0, "Trailing weeks of history (0 = configured default)")
}
