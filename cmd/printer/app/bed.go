package app

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

// NewBedCommand creates the bed command and its subcommands.
func NewBedCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bed",
		Short: "Control the heated bed",
	}
	cmd.AddCommand(newBedTempCommand(globalOpts))
	cmd.AddCommand(newBedGetCommand(globalOpts))
	return cmd
}

func newBedTempCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "temp <celsius>",
		Short: "Set the bed target temperature",
		Long: `Set the target temperature of the heated bed in degrees Celsius. A
target of zero turns the heater off.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("temperature %q is not a number", args[0])
			}
			return runBedTemp(cmd.OutOrStdout(), globalOpts, target)
		},
	}
}

func newBedGetCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the bed temperature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBedGet(cmd.OutOrStdout(), globalOpts)
		},
	}
}

func runBedTemp(w io.Writer, globalOpts *GlobalOptions, target float64) error {
	client, _, err := getClient(globalOpts)
	if err != nil {
		return err
	}
	if err := client.SetBedTemperature(context.Background(), target); err != nil {
		return err
	}

	if target == 0 {
		fmt.Fprintln(w, "Bed heater off.")
	} else {
		fmt.Fprintf(w, "Heating bed to %.1f C.\n", target)
	}
	return nil
}

func runBedGet(w io.Writer, globalOpts *GlobalOptions) error {
	client, _, err := getClient(globalOpts)
	if err != nil {
		return err
	}
	temp, err := client.BedTemperature(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "bed    temp: %6.1f C; setpoint: %6.1f C\n", temp.Actual, temp.Target)
	return nil
}
