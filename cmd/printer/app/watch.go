package app

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/printcli/printer/internal/watch"
)

// WatchOptions holds the options for the watch command.
type WatchOptions struct {
	*GlobalOptions

	IntervalSeconds int
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &WatchOptions{GlobalOptions: globalOpts}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch printer state and job progress live",
		Long: `Show a live view of the printer state, temperatures and job progress,
refreshed on an interval. Press q or ctrl+c to quit.

The refresh interval defaults to the poll_interval setting from the
config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts)
		},
	}
	cmd.Flags().IntVar(&opts.IntervalSeconds, "interval", 0, "Refresh interval in seconds (default from config)")
	return cmd
}

func runWatch(opts *WatchOptions) error {
	client, cfg, err := getClient(opts.GlobalOptions)
	if err != nil {
		return err
	}

	interval := cfg.PollInterval
	if opts.IntervalSeconds > 0 {
		interval = opts.IntervalSeconds
	}
	return watch.Run(client, time.Duration(interval)*time.Second)
}
