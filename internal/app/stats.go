package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/prosecheck/internal/config"
	"github.com/blackwell-systems/prosecheck/internal/output"
	"github.com/blackwell-systems/prosecheck/internal/store"
)

var statsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show run history and cache statistics",
	Long: `Display recorded check runs from the local database: when they ran,
how many issues they found, how long they took, and whether they were
served from cache.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsLimit, "limit", 20, "How many recent runs to show")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	totals, err := db.CheckRunTotals()
	if err != nil {
		return err
	}
	runs, err := db.RecentCheckRuns(statsLimit)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"totals": totals, "recent": runs})
	}

	fmt.Println(output.StyleHeader.Render("Totals"))
	fmt.Printf("  runs: %d  cache hits: %d  issues found: %d  avg duration: %.1fms\n\n",
		totals.Runs, totals.CacheHits, totals.TotalIssues, totals.AvgDuration)

	if len(runs) == 0 {
		fmt.Println(output.StyleMuted.Render("No recorded runs yet."))
		return nil
	}

	t := output.NewTable("WHEN", "LENGTH", "ISSUES", "QUALITY", "DURATION", "CACHE")
	for _, r := range runs {
		cacheMark := ""
		if r.FromCache {
			cacheMark = "hit"
		}
		t.AddRow(
			r.CheckedAt.Local().Format("2006-01-02 15:04:05"),
			fmt.Sprint(r.TextLength),
			fmt.Sprint(r.TotalIssues),
			fmt.Sprintf("%.0f", r.QualityScore),
			fmt.Sprintf("%.1fms", r.DurationMs),
			cacheMark,
		)
	}
	t.Print()
	return nil
}
