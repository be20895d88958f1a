package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/printcli/printer/octoprint"
)

// ConnectionOptions holds options for the connection command
type ConnectionOptions struct {
	*GlobalOptions

	Connect    bool
	Disconnect bool

	Port        string
	Baudrate    int
	Profile     string
	Save        bool
	Autoconnect bool
}

// NewConnectionCommand creates the connection command.
//
// The connection command manages the serial connection between the
// OctoPrint server and the printer. Without flags it shows the current
// connection state and the available options.
//
// Usage:
//
//	printer connection [--connect|--disconnect] [--port PORT] [--baudrate N]
//	        [--profile PROFILE] [--save] [--autoconnect]
//
// Examples:
//
//	# Show connection state
//	printer connection
//
//	# Connect using the saved preferences
//	printer connection --connect
//
//	# Connect to a specific port and remember it
//	printer connection --connect --port /dev/ttyACM0 --baudrate 250000 --save
//
//	# Disconnect from the printer
//	printer connection --disconnect
func NewConnectionCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &ConnectionOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "connection",
		Short: "Show or change the server's connection to the printer",
		Long: `Manage the serial connection between the OctoPrint server and the
printer it controls.

Without flags the current state and the available ports, baudrates and
printer profiles are shown. --connect and --disconnect change the
connection; the remaining flags refine --connect and are otherwise
ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnection(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Connect, "connect", false, "connect to the printer")
	cmd.Flags().BoolVar(&opts.Disconnect, "disconnect", false, "disconnect from the printer")
	cmd.MarkFlagsMutuallyExclusive("connect", "disconnect")

	cmd.Flags().StringVar(&opts.Port, "port", "", "serial port to connect to (default: last used)")
	cmd.Flags().IntVar(&opts.Baudrate, "baudrate", 0, "baudrate to use")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "printer profile to use")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "save port and baudrate as the new preference")
	cmd.Flags().BoolVar(&opts.Autoconnect, "autoconnect", false, "connect automatically on server startup")

	return cmd
}

func runConnection(w io.Writer, opts *ConnectionOptions) error {
	client, _, err := getClient(opts.GlobalOptions)
	if err != nil {
		return err
	}
	ctx := context.Background()

	switch {
	case opts.Connect:
		err := client.Connect(ctx, octoprint.ConnectOptions{
			Port:           opts.Port,
			Baudrate:       opts.Baudrate,
			PrinterProfile: opts.Profile,
			Save:           opts.Save,
			Autoconnect:    opts.Autoconnect,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "Connection requested.")
		return nil

	case opts.Disconnect:
		if err := client.Disconnect(ctx); err != nil {
			return err
		}
		fmt.Fprintln(w, "Disconnected.")
		return nil
	}

	conn, err := client.Connection(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "State:    %s\n", conn.Current.State)
	if conn.Current.Port != "" {
		fmt.Fprintf(w, "Port:     %s @ %d baud\n", conn.Current.Port, conn.Current.Baudrate)
	}
	if conn.Current.PrinterProfile != "" {
		fmt.Fprintf(w, "Profile:  %s\n", conn.Current.PrinterProfile)
	}
	if len(conn.Options.Ports) > 0 {
		fmt.Fprintf(w, "Ports:    %s\n", strings.Join(conn.Options.Ports, ", "))
	}
	return nil
}
