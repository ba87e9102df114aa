package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/prosecheck/internal/rpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the checker over stdio JSON-RPC",
	Long: `Run a JSON-RPC 2.0 server on stdin/stdout for editor integrations.
Requests are newline-delimited JSON objects. Methods: check_text,
content_changed, apply_suggestion, get_health, get_statistics,
clear_cache, set_enabled.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService(true)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rpc.NewServer(svc).Run(ctx, os.Stdin, os.Stdout)
}
