package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/prosecheck/internal/checker"
	"github.com/blackwell-systems/prosecheck/internal/config"
	"github.com/blackwell-systems/prosecheck/internal/output"
	"github.com/blackwell-systems/prosecheck/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-check a file on every save",
	Long: `Watch a file and re-run analysis whenever it changes. Saves are
debounced: rapid successive writes produce one analysis of the newest
content. Ctrl-C stops watching.

Example:
  prosecheck watch draft.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runWatchFile,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatchFile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	svc, err := checker.New(cfg, checker.WithResultHandler(func(res *checker.Result) {
		fmt.Printf("\n%s\n", output.StyleHeader.Render("— "+args[0]))
		printResult(res)
	}))
	if err != nil {
		return err
	}
	defer svc.Close()

	w, err := watcher.New(args[0], svc)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s (ctrl-c to stop)\n", args[0])
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
