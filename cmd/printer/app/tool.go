package app

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

// NewToolCommand creates the tool command and its subcommands.
func NewToolCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tool",
		Short: "Control hotend temperature and tool selection",
		Long: `Read and set hotend temperatures and select the active extruder on
multi-extruder printers. Tools are numbered from zero.`,
	}
	cmd.AddCommand(newToolTempCommand(globalOpts))
	cmd.AddCommand(newToolGetCommand(globalOpts))
	cmd.AddCommand(newToolSelectCommand(globalOpts))
	return cmd
}

func newToolTempCommand(globalOpts *GlobalOptions) *cobra.Command {
	var tool int
	cmd := &cobra.Command{
		Use:   "temp <celsius>",
		Short: "Set a hotend target temperature",
		Long: `Set the target temperature of a hotend in degrees Celsius. A target
of zero turns the heater off.

Examples:

  # Heat the first hotend to 210C
  printer tool temp 210

  # Turn off the second hotend
  printer tool temp 0 --tool 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("temperature %q is not a number", args[0])
			}
			return runToolTemp(cmd.OutOrStdout(), globalOpts, tool, target)
		},
	}
	cmd.Flags().IntVar(&tool, "tool", 0, "Tool number to set")
	return cmd
}

func newToolGetCommand(globalOpts *GlobalOptions) *cobra.Command {
	var tool int
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a hotend temperature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolGet(cmd.OutOrStdout(), globalOpts, tool)
		},
	}
	cmd.Flags().IntVar(&tool, "tool", 0, "Tool number to read")
	return cmd
}

func newToolSelectCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "select <tool>",
		Short: "Select the active extruder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := strconv.Atoi(args[0])
			if err != nil || tool < 0 {
				return fmt.Errorf("tool %q is not a valid tool number", args[0])
			}
			return runToolSelect(cmd.OutOrStdout(), globalOpts, tool)
		},
	}
}

func runToolTemp(w io.Writer, globalOpts *GlobalOptions, tool int, target float64) error {
	client, _, err := getClient(globalOpts)
	if err != nil {
		return err
	}
	if err := client.SetToolTemperature(context.Background(), tool, target); err != nil {
		return err
	}

	if target == 0 {
		fmt.Fprintf(w, "Heater tool%d off.\n", tool)
	} else {
		fmt.Fprintf(w, "Heating tool%d to %.1f C.\n", tool, target)
	}
	return nil
}

func runToolGet(w io.Writer, globalOpts *GlobalOptions, tool int) error {
	client, _, err := getClient(globalOpts)
	if err != nil {
		return err
	}
	temp, err := client.ToolTemperature(context.Background(), tool)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "tool%d  temp: %6.1f C; setpoint: %6.1f C\n", tool, temp.Actual, temp.Target)
	return nil
}

func runToolSelect(w io.Writer, globalOpts *GlobalOptions, tool int) error {
	client, _, err := getClient(globalOpts)
	if err != nil {
		return err
	}
	if err := client.SelectTool(context.Background(), tool); err != nil {
		return err
	}

	fmt.Fprintf(w, "Selected tool%d.\n", tool)
	return nil
}
