// Package app contains the Cobra command tree for prosecheck.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/prosecheck/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "prosecheck",
	Short: "Multi-engine writing analysis for plain text",
	Long: `prosecheck runs several independent detection engines (usage rules,
dictionary lookup, fuzzy spelling, external linguistic analysis, style
heuristics) over text and merges their findings into one de-duplicated,
confidence-ranked issue list. Each suggestion carries a safety tier that
says whether it may be applied automatically.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.Init(flagNoColor)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("prosecheck", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  check     Analyze a file or stdin and print issues")
		fmt.Println("  watch     Re-check a file on every save")
		fmt.Println("  serve     Expose the checker over stdio JSON-RPC")
		fmt.Println("  health    Show engine health and recommendations")
		fmt.Println("  stats     Show run history and cache statistics")
		fmt.Println("  dict      Manage the user dictionary")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/prosecheck/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
}
