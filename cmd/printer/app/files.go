package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/printcli/printer/internal/output"
	"github.com/printcli/printer/octoprint"
)

// FilesListOptions holds the options for the files list command.
type FilesListOptions struct {
	*GlobalOptions

	Location string
	Long     bool
	JSON     bool
}

// FilesSelectOptions holds the options for the files select command.
type FilesSelectOptions struct {
	*GlobalOptions

	Location string
	Print    bool
}

// NewFilesCommand creates the files command and its subcommands.
func NewFilesCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "List and select printable files",
	}
	cmd.AddCommand(newFilesListCommand(globalOpts))
	cmd.AddCommand(newFilesSelectCommand(globalOpts))
	return cmd
}

func newFilesListCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &FilesListOptions{GlobalOptions: globalOpts}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the files the server knows about",
		Long: `List printable files. By default files from all storage locations are
shown; restrict to one with --location local or --location sdcard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilesList(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Location, "location", "", `Storage location to list ("local" or "sdcard")`)
	cmd.Flags().BoolVarP(&opts.Long, "long", "l", false, "Show size and upload date")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the raw listing as JSON")
	return cmd
}

func newFilesSelectCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &FilesSelectOptions{GlobalOptions: globalOpts}
	cmd := &cobra.Command{
		Use:   "select <path>",
		Short: "Select a file for printing",
		Long: `Select the file at the given path for printing. With --print the job
starts as soon as the file is loaded.

Examples:

  printer files select benchy.gcode
  printer files select cases/lid.gcode --print
  printer files select WHISTLE.GCO --location sdcard`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilesSelect(cmd.OutOrStdout(), opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Location, "location", octoprint.LocationLocal, `Storage location of the file ("local" or "sdcard")`)
	cmd.Flags().BoolVar(&opts.Print, "print", false, "Start printing once the file is selected")
	return cmd
}

func validLocation(location string) error {
	switch location {
	case "", octoprint.LocationLocal, octoprint.LocationSD:
		return nil
	}
	return fmt.Errorf("unknown location %q, expected %q or %q",
		location, octoprint.LocationLocal, octoprint.LocationSD)
}

func runFilesList(w io.Writer, opts *FilesListOptions) error {
	if err := validLocation(opts.Location); err != nil {
		return err
	}
	client, _, err := getClient(opts.GlobalOptions)
	if err != nil {
		return err
	}
	listing, err := client.Files(context.Background(), opts.Location)
	if err != nil {
		return err
	}

	if opts.JSON {
		return output.WriteJSON(w, listing)
	}

	var rows [][]string
	var walk func(files []octoprint.FileInfo, prefix string)
	walk = func(files []octoprint.FileInfo, prefix string) {
		for _, f := range files {
			if f.IsFolder() {
				walk(f.Children, prefix+f.Name+"/")
				continue
			}
			row := []string{prefix + f.Name, f.Origin}
			if opts.Long {
				uploaded := "-"
				if f.Date > 0 {
					uploaded = time.Unix(f.Date, 0).Format("2006-01-02 15:04")
				}
				row = append(row, output.FormatSize(f.Size), uploaded)
			}
			rows = append(rows, row)
		}
	}
	walk(listing.Files, "")

	if len(rows) == 0 {
		fmt.Fprintln(w, "No files.")
		return nil
	}

	headers := []string{"NAME", "LOCATION"}
	if opts.Long {
		headers = append(headers, "SIZE", "UPLOADED")
	}
	output.RenderTable(w, headers, rows)

	if listing.Free > 0 {
		fmt.Fprintf(w, "Free space: %s\n", output.FormatSize(listing.Free))
	}
	return nil
}

func runFilesSelect(w io.Writer, opts *FilesSelectOptions, path string) error {
	if err := validLocation(opts.Location); err != nil {
		return err
	}
	client, _, err := getClient(opts.GlobalOptions)
	if err != nil {
		return err
	}
	if err := client.SelectFile(context.Background(), opts.Location, path, opts.Print); err != nil {
		return err
	}

	if opts.Print {
		fmt.Fprintf(w, "Selected %s, print starting.\n", path)
	} else {
		fmt.Fprintf(w, "Selected %s.\n", path)
	}
	return nil
}
