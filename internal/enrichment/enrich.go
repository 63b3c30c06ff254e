// Package enrichment generates narrative text and illustrative media for
// already-ranked companies. Everything here is best-effort: a failure
// degrades to templated text or absent media and never disturbs ranking.
package enrichment

import (
	"context"
	"fmt"

	"github.com/minji/esg-compass/internal/llm"
	"github.com/minji/esg-compass/internal/types"
)

// Narrative is the generated text bundle for one company. Alignment holds
// the 17-goal fit scores when the generator computed them, and stays empty
// otherwise.
type Narrative struct {
	Explanation      string    `json:"explanation"`
	InvestmentReport string    `json:"investment_report"`
	SocialPost       string    `json:"sns_promotion"`
	Alignment        []float64 `json:"sdg_alignment,omitempty"`
}

// Generator is the narrow contract between the core and the generative
// services. Media methods return an empty string for "absent".
type Generator interface {
	GenerateNarrative(ctx context.Context, companyName, referenceSentence string, riskTag types.Risk, sentimentScore float64) (Narrative, error)
	GenerateImage(ctx context.Context, referenceSentence, companyName string) (string, error)
	GenerateVideo(ctx context.Context, referenceSentence, companyName string) (string, error)
}

// Mode selects between the live generative backend and deterministic mock
// output. The switch is explicit configuration, not an env probe buried in
// call sites: both modes are supported working modes, not a degradation.
type Mode string

const (
	// ModeLive calls the configured generative backend.
	ModeLive Mode = "live"
	// ModeMock produces deterministic templated content without any
	// external call. The default when no API key is configured.
	ModeMock Mode = "mock"
)

// New constructs a Generator for the given mode. ModeLive requires a
// non-nil client.
func New(mode Mode, client llm.Client) (Generator, error) {
	switch mode {
	case ModeLive:
		if client == nil {
			return nil, fmt.Errorf("enrichment: live mode requires a model client")
		}
		return &GeminiGenerator{client: client}, nil
	case ModeMock:
		return &MockGenerator{}, nil
	default:
		return nil, fmt.Errorf("enrichment: unknown mode %q", mode)
	}
}
