package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewSDCommand creates the sd command and its subcommands.
func NewSDCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sd",
		Short: "Manage the printer's SD card",
		Long: `Query and manage the SD card attached to the printer itself. The card
must be initialized before its files can be listed or printed.`,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether the SD card is ready",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSDStatus(cmd.OutOrStdout(), globalOpts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Initialize the SD card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSDCommand(cmd.OutOrStdout(), globalOpts, "init")
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Refresh the SD card file list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSDCommand(cmd.OutOrStdout(), globalOpts, "refresh")
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "release",
		Short: "Release the SD card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSDCommand(cmd.OutOrStdout(), globalOpts, "release")
		},
	})
	return cmd
}

func runSDStatus(w io.Writer, globalOpts *GlobalOptions) error {
	client, _, err := getClient(globalOpts)
	if err != nil {
		return err
	}
	state, err := client.SD(context.Background())
	if err != nil {
		return err
	}

	if state.Ready {
		fmt.Fprintln(w, "SD card: ready")
	} else {
		fmt.Fprintln(w, "SD card: not ready")
	}
	return nil
}

func runSDCommand(w io.Writer, globalOpts *GlobalOptions, action string) error {
	client, _, err := getClient(globalOpts)
	if err != nil {
		return err
	}

	ctx := context.Background()
	switch action {
	case "init":
		err = client.InitSD(ctx)
	case "refresh":
		err = client.RefreshSD(ctx)
	case "release":
		err = client.ReleaseSD(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "SD %s requested.\n", action)
	return nil
}
