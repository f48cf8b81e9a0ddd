package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/transcript-pipeline/internal/client"
	"github.com/jonathan/transcript-pipeline/internal/observability"
	"github.com/jonathan/transcript-pipeline/internal/types"
)

var (
	transcribeConfigPath   string
	transcribeServerURL    string
	transcribePollInterval float64
	transcribePollTimeout  float64
	transcribeVerbose      bool
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <video-id>",
	Short: "Transcribe a YouTube video through the pipeline server",
	Long: `Submit a video to a running pipeline server, poll its progress, and print the cleaned transcript.

The server must already be running (see 'serve'). Configuration can be loaded from a JSON file using --config.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	transcribeCmd.Flags().StringVar(&transcribeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	transcribeCmd.Flags().StringVarP(&transcribeServerURL, "server", "s", "", "Base URL of the pipeline server")
	transcribeCmd.Flags().Float64Var(&transcribePollInterval, "poll-interval", 0, "Seconds between progress polls")
	transcribeCmd.Flags().Float64Var(&transcribePollTimeout, "poll-timeout", 0, "Seconds before a stuck job is abandoned")
	transcribeCmd.Flags().BoolVarP(&transcribeVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(transcribeCmd)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	videoID := args[0]

	cfg, err := loadMergedConfig(cmd, transcribeConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("server") {
		cfg.ServerURL = transcribeServerURL
	}
	if cmd.Flags().Changed("poll-interval") {
		cfg.PollInterval = transcribePollInterval
	}
	if cmd.Flags().Changed("poll-timeout") {
		cfg.PollTimeout = transcribePollTimeout
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = transcribeVerbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	cl := newClient(cfg.ServerURL, cfg.PollInterval, cfg.PollTimeout)

	if err := cl.Health(ctx); err != nil {
		return fmt.Errorf("pipeline server is not reachable at %s: %w", cfg.ServerURL, err)
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		if meta, err := cl.Metadata(ctx, videoID); err == nil {
			printer.PrintVideoMetadata(videoID, meta)
		}
	}

	transcript, err := cl.Transcribe(ctx, videoID, progressReporter(cfg.Verbose))
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	if cfg.Verbose {
		printer.PrintTranscript(transcript)
	} else {
		fmt.Println(transcript)
	}
	return nil
}

// newClient builds a pipeline client from merged config values.
func newClient(serverURL string, pollInterval, pollTimeout float64) *client.Client {
	var opts []client.Option
	if pollInterval > 0 {
		opts = append(opts, client.WithPollInterval(time.Duration(pollInterval*float64(time.Second))))
	}
	if pollTimeout > 0 {
		opts = append(opts, client.WithPollTimeout(time.Duration(pollTimeout*float64(time.Second))))
	}
	return client.New(serverURL, opts...)
}

// progressReporter returns a progress callback that redraws a single status line.
func progressReporter(verbose bool) client.ProgressFunc {
	if !verbose {
		return nil
	}
	return func(snap types.JobSnapshot) {
		fmt.Fprintf(os.Stderr, "\r%s", observability.ProgressLine(snap))
		if snap.Terminal() {
			fmt.Fprintln(os.Stderr)
		}
	}
}
