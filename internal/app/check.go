package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/prosecheck/internal/checker"
	"github.com/blackwell-systems/prosecheck/internal/config"
	"github.com/blackwell-systems/prosecheck/internal/output"
	"github.com/blackwell-systems/prosecheck/internal/store"
)

var (
	checkCategories []string
	checkLanguage   string
	checkNoStore    bool
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Analyze a file (or stdin) and print issues",
	Long: `Run all configured engines over the given file, or stdin when no file
is given (or the file is "-"), and print the merged issue list.

Examples:
  prosecheck check draft.txt
  cat draft.txt | prosecheck check
  prosecheck check --categories spelling,grammar draft.txt
  prosecheck check --json draft.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringSliceVar(&checkCategories, "categories", nil, "Issue categories to check (default: all)")
	checkCmd.Flags().StringVar(&checkLanguage, "language", "", "Locale for dictionary-backed engines (default: from config)")
	checkCmd.Flags().BoolVar(&checkNoStore, "no-store", false, "Skip recording this run in the local database")
	rootCmd.AddCommand(checkCmd)
}

// readInput reads the check target: a named file or stdin.
func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// newService builds a checker service from config and, unless disabled, an
// attached store. The returned cleanup closes what was opened.
func newService(withStore bool) (*checker.Service, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	var opts []checker.Option
	var db *store.DB
	if withStore {
		// A broken local database degrades to no persistence.
		if d, err := store.Open(config.DBPath()); err == nil {
			db = d
			opts = append(opts, checker.WithStore(db))
		}
	}

	svc, err := checker.New(cfg, opts...)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		_ = svc.Close()
		if db != nil {
			_ = db.Close()
		}
	}
	return svc, cleanup, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	svc, cleanup, err := newService(!checkNoStore)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.CheckText(context.Background(), text, checker.Options{
		Categories: checkCategories,
		Language:   checkLanguage,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printResult(res)
	return nil
}

func printResult(res *checker.Result) {
	if len(res.Issues) == 0 {
		fmt.Println(output.StyleSuccess.Render("No issues found."))
		fmt.Println(output.QualityBar(res.Statistics.QualityScore, 20))
		return
	}

	output.IssueTable(res.Issues).Print()
	fmt.Println()

	var parts []string
	for cat, n := range res.Statistics.ByCategory {
		parts = append(parts, fmt.Sprintf("%s: %d", cat, n))
	}
	fmt.Printf("%d issue(s)  %s\n", res.Statistics.TotalIssues, strings.Join(parts, "  "))
	fmt.Println(output.QualityBar(res.Statistics.QualityScore, 20),
		output.LatencySummary(res.Statistics.ProcessingTimeMs, res.Statistics.FromCache))
}
