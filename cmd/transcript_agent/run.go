package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/transcript-pipeline/internal/observability"
	"github.com/jonathan/transcript-pipeline/internal/pipeline"
	"github.com/jonathan/transcript-pipeline/internal/provider"
	"github.com/jonathan/transcript-pipeline/internal/store"
	"github.com/jonathan/transcript-pipeline/internal/types"
)

var runCmd = &cobra.Command{
	Use:   "run <video-id>",
	Short: "Run the full pipeline end-to-end without a server",
	Long: `Fetch captions, clean them, and produce a bullet summary in one step: transcription -> cleaning -> summarization.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	Args: cobra.ExactArgs(1),
	RunE: runPipelineCmd,
}

var (
	runConfigPath string
	runUseBrowser bool
	runVerbose    bool
)

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	runCmd.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for consent-walled watch pages (requires Chrome)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(runCmd)
}

func runPipelineCmd(cmd *cobra.Command, args []string) error {
	videoID := args[0]
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd, runConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	prov := provider.NewYouTube(
		provider.WithBrowserFallback(cfg.UseBrowser),
		provider.WithVerbose(cfg.Verbose),
	)
	st := store.New()
	pipe := pipeline.New(st, prov, cfg.Verbose)
	printer := observability.NewPrinter(os.Stdout)

	onProgress := pipelineReporter(cfg.Verbose)

	if cfg.Verbose {
		if meta, err := prov.Metadata(ctx, videoID); err == nil {
			printer.PrintVideoMetadata(videoID, meta)
		}
	}

	if err := pipe.Transcribe(ctx, videoID, onProgress); err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}
	transcript, ok := st.Result(types.KindTranscription, videoID)
	if !ok {
		return fmt.Errorf("transcription produced no result for %s", videoID)
	}
	if cfg.Verbose {
		printer.PrintTranscript(transcript)
	}

	if err := pipe.Summarize(ctx, videoID, transcript, onProgress); err != nil {
		return fmt.Errorf("summarization failed: %w", err)
	}
	summary, ok := st.Result(types.KindSummarization, videoID)
	if !ok {
		return fmt.Errorf("summarization produced no result for %s", videoID)
	}

	if cfg.Verbose {
		printer.PrintSummary(summary)
	} else {
		fmt.Println(summary)
	}
	return nil
}

// pipelineReporter adapts the verbose progress line to the pipeline callback type.
func pipelineReporter(verbose bool) pipeline.ProgressFunc {
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
