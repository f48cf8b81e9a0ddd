package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/transcript-pipeline/internal/observability"
)

var (
	summarizeConfigPath     string
	summarizeServerURL      string
	summarizeTranscriptFile string
	summarizePollInterval   float64
	summarizePollTimeout    float64
	summarizeVerbose        bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <video-id>",
	Short: "Summarize a transcript through the pipeline server",
	Long: `Submit a transcript for summarization, poll its progress, and print the bullet summary.

The transcript is read from --transcript, or from stdin when the flag is omitted.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	summarizeCmd.Flags().StringVarP(&summarizeServerURL, "server", "s", "", "Base URL of the pipeline server")
	summarizeCmd.Flags().StringVarP(&summarizeTranscriptFile, "transcript", "t", "", "Path to transcript text file (defaults to stdin)")
	summarizeCmd.Flags().Float64Var(&summarizePollInterval, "poll-interval", 0, "Seconds between progress polls")
	summarizeCmd.Flags().Float64Var(&summarizePollTimeout, "poll-timeout", 0, "Seconds before a stuck job is abandoned")
	summarizeCmd.Flags().BoolVarP(&summarizeVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	videoID := args[0]

	cfg, err := loadMergedConfig(cmd, summarizeConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("server") {
		cfg.ServerURL = summarizeServerURL
	}
	if cmd.Flags().Changed("poll-interval") {
		cfg.PollInterval = summarizePollInterval
	}
	if cmd.Flags().Changed("poll-timeout") {
		cfg.PollTimeout = summarizePollTimeout
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = summarizeVerbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	transcript, err := readTranscript(summarizeTranscriptFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	cl := newClient(cfg.ServerURL, cfg.PollInterval, cfg.PollTimeout)

	if err := cl.Health(ctx); err != nil {
		return fmt.Errorf("pipeline server is not reachable at %s: %w", cfg.ServerURL, err)
	}

	summary, err := cl.Summarize(ctx, videoID, transcript, progressReporter(cfg.Verbose))
	if err != nil {
		return fmt.Errorf("summarization failed: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintSummary(summary)
	} else {
		fmt.Println(summary)
	}
	return nil
}

// readTranscript reads transcript text from a file, or stdin when path is empty.
func readTranscript(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read transcript from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript file: %w", err)
	}
	return string(data), nil
}
