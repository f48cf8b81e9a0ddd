package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/transcript-pipeline/internal/config"
	"github.com/jonathan/transcript-pipeline/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveAsync      bool
	serveUseBrowser bool
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the transcription and summarization pipeline.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveAsync, "async", false, "Accept submits with 202 and run jobs in the background")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for consent-walled watch pages (requires Chrome)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(cmd, serveConfigPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("async") {
		cfg.Async = serveAsync
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = serveUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = serveVerbose
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:       cfg.Port,
		Async:      cfg.Async,
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})

	return srv.Start()
}

// loadMergedConfig loads the optional config file and merges it over defaults.
func loadMergedConfig(cmd *cobra.Command, path string) (config.Config, error) {
	cfg := config.Defaults()
	if path == "" {
		return cfg, nil
	}

	loaded, err := config.LoadConfig(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return cfg, err
	}

	merged := loaded.MergeWithDefaults(cfg)
	if cmd.Flags().Changed("verbose") || merged.Verbose {
		fmt.Printf("Loaded config from: %s\n", path)
	}
	return merged, nil
}
