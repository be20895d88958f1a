package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/printcli/printer/octoprint"
)

// JogOptions holds options for the jog command
type JogOptions struct {
	*GlobalOptions

	X float64
	Y float64
	Z float64
}

// NewJogCommand creates the jog command.
//
// The jog command moves the print head by relative distances. Repeated
// invocations accumulate: jogging x by 10 twice moves 20mm in total.
//
// Usage:
//
//	printer jog [-x N] [-y N] [-z N]
//
// Examples:
//
//	# Move 10mm along X and -5mm along Y
//	printer jog -x 10 -y -5
//
//	# Raise the nozzle a little
//	printer jog -z 0.2
func NewJogCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &JogOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "jog",
		Short: "Move the print head by relative distances",
		Long: `Move the print head by the given millimeter distances.

All moves are relative to the current position. Axes without a flag stay
untouched. The firmware enforces its own limits; no client-side bounds
checking happens.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJog(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.X, "x", "x", 0, "distance on the X axis in mm")
	cmd.Flags().Float64VarP(&opts.Y, "y", "y", 0, "distance on the Y axis in mm")
	cmd.Flags().Float64VarP(&opts.Z, "z", "z", 0, "distance on the Z axis in mm")

	return cmd
}

func runJog(w io.Writer, opts *JogOptions) error {
	if opts.X == 0 && opts.Y == 0 && opts.Z == 0 {
		return fmt.Errorf("nothing to move: give at least one of -x, -y, -z")
	}

	client, _, err := getClient(opts.GlobalOptions)
	if err != nil {
		return err
	}

	delta := octoprint.JogDelta{X: opts.X, Y: opts.Y, Z: opts.Z}
	if err := client.Jog(context.Background(), delta); err != nil {
		return err
	}

	fmt.Fprintln(w, "Jog queued.")
	return nil
}
