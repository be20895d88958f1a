package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// cliVersion is overridden at build time via -ldflags.
var cliVersion = "dev"

// VersionOptions holds options for the version command
type VersionOptions struct {
	*GlobalOptions

	// Client shows only the CLI version
	Client bool
}

// NewVersionCommand creates the version command.
//
// The version command displays the CLI version and, unless --client is
// given, queries the OctoPrint server for its API and server versions.
//
// Usage:
//
//	printer version [--client]
func NewVersionCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &VersionOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display client and server version information",
		Long: `Display version information for the printer CLI and the OctoPrint
server it talks to.

Use --client to skip the server query, for example when no printer is
reachable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Client, "client", false,
		"show client version only")

	return cmd
}

func runVersion(w io.Writer, opts *VersionOptions) error {
	fmt.Fprintf(w, "Client version: %s\n", cliVersion)
	if opts.Client {
		return nil
	}

	client, _, err := getClient(opts.GlobalOptions)
	if err != nil {
		return err
	}

	v, err := client.Version(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get server version: %w", err)
	}

	fmt.Fprintf(w, "Server version: %s (API %s)\n", v.Server, v.API)
	if v.Text != "" {
		fmt.Fprintf(w, "Server:         %s\n", v.Text)
	}
	return nil
}
