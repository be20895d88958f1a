package app

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

// NewExtrudeCommand creates the extrude command.
//
// The extrude command extrudes filament on the currently selected
// extruder. Negative amounts retract.
//
// Usage:
//
//	printer extrude <mm>
//
// Examples:
//
//	# Extrude 5mm of filament
//	printer extrude 5
//
//	# Retract 2mm
//	printer extrude -- -2
func NewExtrudeCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "extrude <mm>",
		Short: "Extrude filament on the selected extruder",
		Long: `Extrude the given amount of filament in millimeters on the currently
selected extruder. Negative amounts retract; use "--" before a negative
value so it is not mistaken for a flag.

The extruder must be at printing temperature, otherwise the firmware
refuses the move.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("amount %q is not a number", args[0])
			}
			return runExtrude(cmd.OutOrStdout(), globalOpts, amount)
		},
	}
}

func runExtrude(w io.Writer, globalOpts *GlobalOptions, amount float64) error {
	client, _, err := getClient(globalOpts)
	if err != nil {
		return err
	}
	if err := client.Extrude(context.Background(), amount); err != nil {
		return err
	}

	if amount < 0 {
		fmt.Fprintf(w, "Retracting %.1fmm.\n", -amount)
	} else {
		fmt.Fprintf(w, "Extruding %.1fmm.\n", amount)
	}
	return nil
}
