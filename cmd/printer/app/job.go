package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/printcli/printer/internal/output"
)

// JobStatusOptions holds the options for the job status command.
type JobStatusOptions struct {
	*GlobalOptions

	JSON bool
}

// NewJobCommand creates the job command and its subcommands.
func NewJobCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Control the current print job",
		Long: `Inspect and control the current print job. Starting a job requires a
file to be selected first, see "printer files select".`,
	}
	cmd.AddCommand(newJobStatusCommand(globalOpts))
	for _, action := range []string{"start", "pause", "resume", "restart", "cancel"} {
		cmd.AddCommand(newJobActionCommand(globalOpts, action))
	}
	return cmd
}

func newJobStatusCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &JobStatusOptions{GlobalOptions: globalOpts}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current job and its progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobStatus(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the raw job information as JSON")
	return cmd
}

func newJobActionCommand(globalOpts *GlobalOptions, action string) *cobra.Command {
	short := map[string]string{
		"start":   "Start printing the selected file",
		"pause":   "Pause the running job",
		"resume":  "Resume a paused job",
		"restart": "Restart a paused job from the beginning",
		"cancel":  "Cancel the current job",
	}
	return &cobra.Command{
		Use:   action,
		Short: short[action],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobAction(cmd.OutOrStdout(), globalOpts, action)
		},
	}
}

func runJobStatus(w io.Writer, opts *JobStatusOptions) error {
	client, _, err := getClient(opts.GlobalOptions)
	if err != nil {
		return err
	}
	job, err := client.Job(context.Background())
	if err != nil {
		return err
	}

	if opts.JSON {
		return output.WriteJSON(w, job)
	}

	fmt.Fprintf(w, "Job state: %s\n", job.State)
	if job.Job.File.Name != "" {
		fmt.Fprintf(w, "File: %s (%s)\n", job.Job.File.Name, output.FormatSize(job.Job.File.Size))
	}
	if job.Progress.Completion > 0 {
		fmt.Fprintf(w, "Progress: %.1f%%\n", job.Progress.Completion)
	}
	if job.Progress.PrintTime > 0 {
		fmt.Fprintf(w, "Elapsed: %s\n", output.FormatDuration(job.Progress.PrintTime))
	}
	if job.Progress.PrintTimeLeft > 0 {
		fmt.Fprintf(w, "Remaining: %s\n", output.FormatDuration(job.Progress.PrintTimeLeft))
	}
	return nil
}

func runJobAction(w io.Writer, globalOpts *GlobalOptions, action string) error {
	client, _, err := getClient(globalOpts)
	if err != nil {
		return err
	}

	ctx := context.Background()
	switch action {
	case "start":
		err = client.StartJob(ctx)
	case "pause":
		err = client.PauseJob(ctx)
	case "resume":
		err = client.ResumeJob(ctx)
	case "restart":
		err = client.RestartJob(ctx)
	case "cancel":
		err = client.CancelJob(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Job %s requested.\n", action)
	return nil
}
