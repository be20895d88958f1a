package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/printcli/printer/octoprint"
)

// NewHomeCommand creates the home command.
//
// The home command homes the print head on the given axes. The axes are
// given as one argument, e.g. "xy" or "xyz".
//
// Usage:
//
//	printer home <axes>
//
// Examples:
//
//	# Home X and Y
//	printer home xy
//
//	# Home everything
//	printer home xyz
func NewHomeCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "home <axes>",
		Short: "Home the print head",
		Long: `Home the print head on the given axes.

The argument names the axes to home, in any order and case, e.g. "xy",
"z" or "XYZ".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHome(cmd.OutOrStdout(), globalOpts, args[0])
		},
	}
}

func runHome(w io.Writer, globalOpts *GlobalOptions, axesArg string) error {
	var axes []octoprint.Axis
	for _, r := range strings.ToLower(axesArg) {
		switch r {
		case 'x':
			axes = append(axes, octoprint.AxisX)
		case 'y':
			axes = append(axes, octoprint.AxisY)
		case 'z':
			axes = append(axes, octoprint.AxisZ)
		default:
			return fmt.Errorf("unknown axis %q: only x, y and z exist", string(r))
		}
	}
	if len(axes) == 0 {
		return fmt.Errorf("no axes given")
	}

	client, _, err := getClient(globalOpts)
	if err != nil {
		return err
	}
	if err := client.Home(context.Background(), axes...); err != nil {
		return err
	}

	fmt.Fprintf(w, "Homing %s.\n", strings.ToLower(axesArg))
	return nil
}
