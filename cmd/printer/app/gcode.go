package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewGcodeCommand creates the gcode command.
//
// Examples:
//
//	# Disable steppers
//	printer gcode M18
//
//	# Send several commands in order
//	printer gcode "G28 X" "G1 X10 F3000"
func NewGcodeCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gcode <command> [command...]",
		Short: "Send raw G-code to the printer",
		Long: `Send one or more raw G-code commands to the printer. Commands are sent
in the order given. Quote commands that contain spaces.

No response is read back; the server only confirms the commands were
queued.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGcode(cmd.OutOrStdout(), globalOpts, args)
		},
	}
}

func runGcode(w io.Writer, globalOpts *GlobalOptions, commands []string) error {
	client, _, err := getClient(globalOpts)
	if err != nil {
		return err
	}
	if err := client.SendCommands(context.Background(), commands...); err != nil {
		return err
	}

	if len(commands) == 1 {
		fmt.Fprintln(w, "Sent 1 command.")
	} else {
		fmt.Fprintf(w, "Sent %d commands.\n", len(commands))
	}
	return nil
}
