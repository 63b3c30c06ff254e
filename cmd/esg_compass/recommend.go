package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minji/esg-compass/internal/config"
	"github.com/minji/esg-compass/internal/enrichment"
	"github.com/minji/esg-compass/internal/llm"
	"github.com/minji/esg-compass/internal/pipeline"
	"github.com/minji/esg-compass/internal/types"
)

var recommendCommand = &cobra.Command{
	Use:   "recommend",
	Short: "Run one recommendation: load the table, rank, enrich the top matches",
	Long: `Scores every company in the metrics table against the given goal weights
and risk preference, then prints the enriched top-N as JSON.

Goals are given as id:importance pairs, e.g. --goals 7:5,13:4.
Configuration can be loaded from a JSON file using --config; command-line
arguments override config file values.`,
	RunE: runRecommend,
}

var (
	recommendConfigPath  string
	recommendDataset     string
	recommendGoals       string
	recommendRisk        string
	recommendTopN        int
	recommendAPIKey      string
	recommendMock        bool
	recommendVerbose     bool
	recommendDatabaseURL string
)

func init() {
	recommendCommand.Flags().StringVar(&recommendConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	recommendCommand.Flags().StringVarP(&recommendDataset, "dataset", "d", "", "Path or URL of the company metrics table (defaults to DATASET_PATH/DATASET_URL env var)")
	recommendCommand.Flags().StringVarP(&recommendGoals, "goals", "g", "", "Selected goals as id:importance pairs, e.g. 7:5,13:4")
	recommendCommand.Flags().StringVarP(&recommendRisk, "risk", "r", "neutral", "Risk preference: safe, neutral or aggressive (Korean labels accepted)")
	recommendCommand.Flags().IntVar(&recommendTopN, "top", 0, "Number of companies to recommend (default 3)")
	recommendCommand.Flags().StringVar(&recommendAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	recommendCommand.Flags().BoolVar(&recommendMock, "mock", false, "Force mock enrichment even when an API key is configured")
	recommendCommand.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Print detailed debug information")
	recommendCommand.Flags().StringVar(&recommendDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(recommendCommand)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if recommendConfigPath != "" {
		loadedCfg, err := config.LoadConfig(recommendConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}
	cfg = cfg.MergeWithDefaults(config.FromEnv())

	// Command-line args take priority over config file and env values.
	if cmd.Flags().Changed("dataset") {
		cfg.Dataset = recommendDataset
	}
	if cmd.Flags().Changed("top") {
		cfg.TopN = recommendTopN
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = recommendAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = recommendDatabaseURL
	}
	if recommendMock {
		cfg.EnrichmentMode = "mock"
	}
	cfg.Verbose = cfg.Verbose || recommendVerbose

	if cfg.Dataset == "" {
		return fmt.Errorf("a dataset is required: set --dataset, the config file, or DATASET_PATH")
	}

	goals, err := parseGoalPairs(recommendGoals)
	if err != nil {
		return err
	}
	risk, err := types.ParseRisk(recommendRisk)
	if err != nil {
		return err
	}
	req := &types.RankingRequest{SelectedGoals: goals, RiskPreference: risk}

	generator, closeClient, err := buildGenerator(ctx, &cfg)
	if err != nil {
		return err
	}
	defer closeClient()

	response, err := pipeline.Run(ctx, pipeline.RunOptions{
		DatasetSource: cfg.Dataset,
		Request:       req,
		TopN:          cfg.TopN,
		Generator:     generator,
		DatabaseURL:   cfg.DatabaseURL,
		Verbose:       cfg.Verbose,
	})
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// parseGoalPairs parses "7:5,13:4" into goal selections, keeping the
// given order.
func parseGoalPairs(spec string) ([]types.GoalSelection, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("at least one goal is required: use --goals id:importance[,id:importance...]")
	}

	var goals []types.GoalSelection
	for _, pair := range strings.Split(spec, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid goal pair %q, expected id:importance", pair)
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid goal id %q: %w", parts[0], err)
		}
		importance, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid importance %q: %w", parts[1], err)
		}
		goals = append(goals, types.GoalSelection{GoalID: id, Importance: importance})
	}
	return goals, nil
}

// buildGenerator constructs the enrichment generator for the resolved
// mode. The returned func closes the model client when one was created.
func buildGenerator(ctx context.Context, cfg *config.Config) (enrichment.Generator, func(), error) {
	if cfg.Mode() == "mock" {
		generator, err := enrichment.New(enrichment.ModeMock, nil)
		return generator, func() {}, err
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create model client: %w", err)
	}
	generator, err := enrichment.New(enrichment.ModeLive, client)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return generator, func() { _ = client.Close() }, nil
}
