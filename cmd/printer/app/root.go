// Package app provides the command-line interface implementation for the
// printer CLI.
//
// This package contains all CLI commands and their implementations, built
// with cobra. Commands are organized hierarchically with a root command and
// subcommands, each mapping to exactly one client operation.
package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/printcli/printer/internal/config"
	"github.com/printcli/printer/octoprint"
)

const (
	// cliName is the name of the CLI application
	cliName = "printer"

	// cliDescription is the short description shown in help text
	cliDescription = "printer - control a 3D printer through its OctoPrint server"
)

// GlobalOptions holds options that are common to all commands
type GlobalOptions struct {
	// URL is the OctoPrint server address
	URL string

	// APIKey authenticates against the server
	APIKey string

	// ConfigPath overrides the config file location
	ConfigPath string

	// TimeoutSeconds bounds each HTTP request
	TimeoutSeconds int
}

// NewPrinterCommand creates the root printer command with all subcommands.
//
// The root command provides the main entry point for the CLI. It sets up
// the global flags and registers all subcommands. No network traffic
// happens before a subcommand actually runs, so --help never touches the
// printer.
func NewPrinterCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: cliDescription,
		Long: `printer is a command-line tool for controlling 3D printers through an
OctoPrint server's HTTP API.

It covers status queries, temperature control, print head movement, job
and file management. The server URL and API key come from --url/--api-key
or from ` + config.DefaultPath() + `.`,
		SilenceUsage: true,
		// SilenceErrors is false by default - we want to show errors to users
	}

	cmd.PersistentFlags().StringVar(&opts.URL, "url", "",
		"OctoPrint server URL (e.g. http://octopi.local)")
	cmd.PersistentFlags().StringVar(&opts.APIKey, "api-key", "",
		"API key for server access")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"config file (default: "+config.DefaultPath()+")")
	cmd.PersistentFlags().IntVar(&opts.TimeoutSeconds, "timeout", 0,
		"request timeout in seconds (default: 30)")

	cmd.AddCommand(
		NewStatusCommand(opts),
		NewVersionCommand(opts),
		NewConnectionCommand(opts),
		NewHomeCommand(opts),
		NewJogCommand(opts),
		NewExtrudeCommand(opts),
		NewToolCommand(opts),
		NewBedCommand(opts),
		NewSDCommand(opts),
		NewGcodeCommand(opts),
		NewJobCommand(opts),
		NewFilesCommand(opts),
		NewWatchCommand(opts),
		NewSimulateCommand(),
	)

	return cmd
}

// getClient resolves the effective configuration and returns a ready
// client.
//
// Resolution order per value: flag first, then the config file. A missing
// URL is an error; a missing API key is not, since a server may run
// without authentication.
func getClient(opts *GlobalOptions) (*octoprint.Client, config.Config, error) {
	fileCfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, config.Config{}, err
	}

	url := opts.URL
	if url == "" {
		url = fileCfg.URL
	}
	if url == "" {
		return nil, config.Config{}, fmt.Errorf(
			"no printer URL configured: pass --url or set url in %s", config.DefaultPath())
	}

	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = fileCfg.APIKey
	}

	cfg := octoprint.Config{BaseURL: url, APIKey: apiKey}
	if opts.TimeoutSeconds > 0 {
		cfg.HTTPClient = &http.Client{Timeout: time.Duration(opts.TimeoutSeconds) * time.Second}
	}

	return octoprint.NewClient(cfg), fileCfg, nil
}

// ExitCode maps a command error to the process exit code: transport
// failures exit 2, everything else (service failures and usage errors
// included) exits 1.
func ExitCode(err error) int {
	var terr *octoprint.TransportError
	if errors.As(err, &terr) {
		return 2
	}
	return 1
}
