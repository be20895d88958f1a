package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/printcli/printer/internal/simulator"
)

// SimulateOptions holds the options for the simulate command.
type SimulateOptions struct {
	Addr   string
	APIKey string
}

// NewSimulateCommand creates the simulate command.
//
// The simulator serves the same HTTP API as a real print server with a
// virtual printer behind it, which is handy for trying out the other
// commands without hardware:
//
//	printer simulate &
//	printer --url http://127.0.0.1:5000 status
func NewSimulateCommand() *cobra.Command {
	opts := &SimulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a local simulated print server",
		Long: `Run a local HTTP server that behaves like a print server with a
virtual printer attached: heaters drift toward their targets, jobs
progress in wall-clock time, and the usual conflict responses apply.

With --api-key set, requests must carry that key; without it the
server accepts any request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", "127.0.0.1:5000", "Address to listen on")
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "Require this API key on every request")
	return cmd
}

func runSimulate(cmd *cobra.Command, opts *SimulateOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Simulated print server listening on http://%s\n", opts.Addr)
	return simulator.New(opts.APIKey).ListenAndServe(ctx, opts.Addr)
}
