package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/prosecheck/internal/output"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show engine health and recommendations",
	Long: `Display per-engine invocation statistics (calls, errors, timeouts,
average latency) and ranked recommendations for degraded engines.

Health counters cover the current process; for a long-running service use
the JSON-RPC get_health method instead.`,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService(false)
	if err != nil {
		return err
	}
	defer cleanup()

	report := svc.GetHealthReport()

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Println(output.StyleHeader.Render("Active engines"))
	for _, name := range svc.Statistics().ActiveEngines {
		fmt.Println("  " + name)
	}
	fmt.Println()

	if len(report.PerEngine) > 0 {
		t := output.NewTable("ENGINE", "CALLS", "ERRORS", "TIMEOUTS", "AVG LATENCY")
		for _, r := range report.PerEngine {
			t.AddRow(r.Engine,
				fmt.Sprint(r.Calls),
				fmt.Sprint(r.Errors),
				fmt.Sprint(r.Timeouts),
				r.AvgLatency().Round(time.Millisecond).String(),
			)
		}
		t.Print()
		fmt.Println()
	}

	if len(report.Recommendations) == 0 {
		fmt.Println(output.StyleSuccess.Render("No recommendations."))
		return nil
	}
	fmt.Println(output.StyleHeader.Render("Recommendations"))
	for _, rec := range report.Recommendations {
		fmt.Printf("  [%s] %s\n      %s\n", rec.Severity, output.StyleBold.Render(rec.Title), rec.Detail)
	}
	return nil
}
