package app

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/printcli/printer/internal/output"
	"github.com/printcli/printer/octoprint"
)

// StatusOptions holds options for the status command
type StatusOptions struct {
	*GlobalOptions

	// History requests that many temperature history datapoints
	History int

	// JSON dumps the raw response instead of the summary
	JSON bool
}

// NewStatusCommand creates the status command.
//
// The status command queries the printer's state text and the temperature
// readings of every reported sensor.
//
// Usage:
//
//	printer status [--history N] [--json]
//
// Examples:
//
//	# Show printer state and temperatures
//	printer status
//
//	# Include the last 10 temperature history datapoints (JSON output)
//	printer status --history 10 --json
func NewStatusCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &StatusOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show printer state and temperatures",
		Long: `Query the printer's current state and temperature readings.

The summary shows the state text and one line per temperature sensor.
Use --json for the full response, including temperature history when
--history is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.History, "history", 0,
		"number of temperature history datapoints to request")
	cmd.Flags().BoolVar(&opts.JSON, "json", false,
		"print the raw response as JSON")

	return cmd
}

func runStatus(w io.Writer, opts *StatusOptions) error {
	client, _, err := getClient(opts.GlobalOptions)
	if err != nil {
		return err
	}

	status, err := client.Status(context.Background(), octoprint.StatusOptions{
		History: opts.History > 0,
		Limit:   opts.History,
	})
	if err != nil {
		return err
	}

	if opts.JSON {
		return output.WriteJSON(w, status)
	}

	fmt.Fprintf(w, "Printer status: %s\n", status.State.Text)
	printTemperatures(w, status.Temperature.Current)
	if status.SD.Ready {
		fmt.Fprintln(w, "SD card: ready")
	}
	return nil
}

// printTemperatures writes one line per sensor, tools first, bed last.
func printTemperatures(w io.Writer, current map[string]octoprint.Temperature) {
	sensors := make([]string, 0, len(current))
	for sensor := range current {
		if sensor != "bed" {
			sensors = append(sensors, sensor)
		}
	}
	sort.Strings(sensors)
	if _, ok := current["bed"]; ok {
		sensors = append(sensors, "bed")
	}

	for _, sensor := range sensors {
		t := current[sensor]
		fmt.Fprintf(w, "%-6s temp: %6.1f C; setpoint: %6.1f C\n", sensor, t.Actual, t.Target)
	}
}
