// Package pipeline provides the high-level orchestration for one
// recommendation run: load the table, rank every company, enrich the
// top-N with generated narrative and media.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/minji/esg-compass/internal/db"
	"github.com/minji/esg-compass/internal/enrichment"
	"github.com/minji/esg-compass/internal/fetch"
	"github.com/minji/esg-compass/internal/observability"
	"github.com/minji/esg-compass/internal/ranking"
	"github.com/minji/esg-compass/internal/tabular"
	"github.com/minji/esg-compass/internal/types"
)

// Enrichment call deadlines. Narrative is a single text generation; image
// generation is observed to take up to a couple of minutes upstream.
const (
	narrativeTimeout = 60 * time.Second
	imageTimeout     = 2 * time.Minute
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Step names reported through progress events and stored with run records.
const (
	StepLoad   = "load_dataset"
	StepRank   = "rank_companies"
	StepEnrich = "enrich_recommendations"
)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	DatasetSource string
	Request       *types.RankingRequest
	TopN          int
	Generator     enrichment.Generator // Required: live or mock
	DatabaseURL   string
	Verbose       bool
	OnProgress    ProgressCallback
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message})
	}
}

// Run executes one recommendation run. The returned response carries the
// enriched top-N in rank order. A load failure or an invalid request is
// fatal; an enrichment failure for one company only degrades that
// company's text to the templated fallback.
func Run(ctx context.Context, opts RunOptions) (*types.RankingResponse, error) {
	if opts.Request == nil {
		return nil, fmt.Errorf("pipeline: ranking request is required")
	}
	if err := opts.Request.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ranking request: %w", err)
	}
	if opts.Generator == nil {
		return nil, fmt.Errorf("pipeline: enrichment generator is required")
	}
	topN := opts.TopN
	if topN == 0 {
		topN = ranking.DefaultTopN
	}

	printer := observability.NewPrinter(os.Stdout)
	if opts.Verbose {
		printer.PrintRequest(opts.Request)
	}

	// Optional database: snapshot cache + run history. Connection failure
	// is a warning, never fatal.
	var database *db.DB
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			log.Printf("Warning: failed to connect to database: %v", err)
			log.Printf("Continuing without snapshot cache and run history...")
		} else {
			defer database.Close()
			if err := database.EnsureSchema(ctx); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
	}

	// Step 1: load the table. Retrieval failure is fatal: the caller must
	// not present a zero-candidate result as a real ranking.
	fetcher := fetch.NewCachedFetcher(database, nil)
	result, err := fetcher.Fetch(ctx, opts.DatasetSource)
	if err != nil {
		return nil, fmt.Errorf("dataset load failed: %w", err)
	}
	records := tabular.Parse(result.Text)
	emitProgress(&opts, StepLoad, fmt.Sprintf("Loaded %d company records from %s", len(records), opts.DatasetSource))

	// Step 2: score and rank. Zero parsed records surfaces as
	// ranking.ErrNoRecords, the same load-failure condition.
	scored, err := ranking.Rank(records, opts.Request, topN)
	if err != nil {
		return nil, fmt.Errorf("ranking failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintRanking(scored)
	}
	emitProgress(&opts, StepRank, fmt.Sprintf("Ranked %d companies, kept top %d", len(records), len(scored)))

	// Record the run before enrichment so a generative outage still
	// leaves a trace of the scores.
	var runID uuid.UUID
	if database != nil {
		runID, err = database.CreateRun(ctx, string(opts.Request.RiskPreference), opts.Request.SelectedGoals)
		if err != nil {
			log.Printf("Warning: failed to create run record: %v", err)
		}
	}

	// Step 3: enrich each ranked company concurrently. Each company is an
	// independent failure domain: narrative errors fall back to templated
	// text, media errors read as absent. Nothing here can fail the run.
	recommendations := make([]types.Recommendation, len(scored))
	g, gCtx := errgroup.WithContext(ctx)
	for i, company := range scored {
		g.Go(func() error {
			recommendations[i] = enrichOne(gCtx, opts.Generator, company)
			return nil
		})
	}
	_ = g.Wait()
	emitProgress(&opts, StepEnrich, fmt.Sprintf("Enriched %d recommendations", len(recommendations)))
	if opts.Verbose {
		printer.PrintRecommendations(recommendations)
	}

	response := &types.RankingResponse{Recommendations: recommendations}

	if database != nil && runID != uuid.Nil {
		if err := database.CompleteRun(ctx, runID, "completed", response); err != nil {
			log.Printf("Warning: failed to record run results: %v", err)
		}
	}

	return response, nil
}

// enrichOne builds the final recommendation for one ranked company. Never
// returns an error: degraded output is still valid output.
func enrichOne(ctx context.Context, gen enrichment.Generator, company ranking.ScoredCompany) types.Recommendation {
	record := company.Record
	reference := record.ReferenceSentence(company.TopGoalID)

	rec := types.Recommendation{
		CompanyName:            record.CompanyName(),
		CorpCode:               record.CorpCode(),
		MatchScore:             company.Score,
		TopGoalCode:            company.TopGoalCode(),
		ImageReferenceSentence: reference,
		AlignmentVector:        []float64{},
	}

	narrativeCtx, cancel := context.WithTimeout(ctx, narrativeTimeout)
	defer cancel()
	narrative, err := gen.GenerateNarrative(narrativeCtx, rec.CompanyName, reference, record.RiskTag(), record.Sentiment(company.TopGoalID))
	if err != nil {
		log.Printf("Warning: narrative generation failed for %s: %v", rec.CompanyName, err)
		goalTitle := rec.TopGoalCode
		if goal, ok := types.GoalByID(company.TopGoalID); ok {
			goalTitle = goal.Title
		}
		narrative = enrichment.FallbackNarrative(rec.CompanyName, goalTitle)
	}
	rec.Explanation = narrative.Explanation
	rec.InvestmentReport = narrative.InvestmentReport
	rec.SocialPost = narrative.SocialPost
	if len(narrative.Alignment) == types.GoalCount {
		rec.AlignmentVector = narrative.Alignment
	}

	imageCtx, cancel := context.WithTimeout(ctx, imageTimeout)
	defer cancel()
	imageURL, err := gen.GenerateImage(imageCtx, reference, rec.CompanyName)
	if err != nil {
		log.Printf("Warning: image generation failed for %s: %v", rec.CompanyName, err)
		imageURL = ""
	}
	rec.ImageDataURL = imageURL

	return rec
}
