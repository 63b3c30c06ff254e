package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minji/esg-compass/internal/config"
	"github.com/minji/esg-compass/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveDataset    string
	serveMock       bool
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the survey flow and recommendation endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveDataset, "dataset", "d", "", "Path or URL of the company metrics table (defaults to DATASET_PATH/DATASET_URL env var)")
	serveCmd.Flags().BoolVar(&serveMock, "mock", false, "Force mock enrichment even when an API key is configured")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loadedCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}
	cfg = cfg.MergeWithDefaults(config.FromEnv())

	if cmd.Flags().Changed("port") || cfg.Port == 0 {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("dataset") {
		cfg.Dataset = serveDataset
	}
	if serveMock {
		cfg.EnrichmentMode = "mock"
	}
	cfg.Verbose = cfg.Verbose || serveVerbose

	if cfg.Dataset == "" {
		return fmt.Errorf("a dataset is required: set --dataset, the config file, or DATASET_PATH")
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		Dataset:     cfg.Dataset,
		TopN:        cfg.TopN,
		APIKey:      cfg.APIKey,
		Mode:        cfg.Mode(),
		DatabaseURL: cfg.DatabaseURL,
		Verbose:     cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
