package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/minji/esg-compass/internal/llm"
	"github.com/minji/esg-compass/internal/prompts"
	"github.com/minji/esg-compass/internal/schemas"
	"github.com/minji/esg-compass/internal/types"
)

const promptFile = "enrichment.json"

// Prompt templates are embedded assets; a missing key is a build defect,
// so they are resolved once at init rather than per call.
var (
	narrativePrompt = prompts.MustGet(promptFile, "company_narrative")
	imagePrompt     = prompts.MustGet(promptFile, "company_image")
	videoPrompt     = prompts.MustGet(promptFile, "company_video")
)

// GeminiGenerator produces narrative and media through the Gemini client.
type GeminiGenerator struct {
	client llm.Client
}

// NewGeminiGenerator wraps a model client in a Generator.
func NewGeminiGenerator(client llm.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

// GenerateNarrative asks the narrative model for the text bundle and
// validates the reply against the embedded schema before trusting it.
func (g *GeminiGenerator) GenerateNarrative(ctx context.Context, companyName, referenceSentence string, riskTag types.Risk, sentimentScore float64) (Narrative, error) {
	prompt := prompts.Format(narrativePrompt, map[string]string{
		"CompanyName":       companyName,
		"ReferenceSentence": referenceSentence,
		"RiskLabel":         riskTag.KoreanLabel(),
		"SentimentScore":    strconv.FormatFloat(sentimentScore, 'f', -1, 64),
	})

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.RoleNarrative)
	if err != nil {
		return Narrative{}, fmt.Errorf("narrative generation failed: %w", err)
	}

	if err := schemas.ValidateJSONString(schemas.NarrativeOutputSchema, raw); err != nil {
		return Narrative{}, fmt.Errorf("narrative output rejected: %w", err)
	}

	var narrative Narrative
	if err := json.Unmarshal([]byte(raw), &narrative); err != nil {
		return Narrative{}, fmt.Errorf("failed to parse narrative output: %w", err)
	}
	return narrative, nil
}

// GenerateImage returns an illustration as a data URL, empty when the
// model produced none.
func (g *GeminiGenerator) GenerateImage(ctx context.Context, referenceSentence, companyName string) (string, error) {
	prompt := prompts.Format(imagePrompt, map[string]string{
		"CompanyName":       companyName,
		"ReferenceSentence": referenceSentence,
	})
	return g.client.GenerateImage(ctx, prompt)
}

// GenerateVideo returns an intro video URL, empty when the model produced
// none. Callers own the deadline; generation runs for minutes.
func (g *GeminiGenerator) GenerateVideo(ctx context.Context, referenceSentence, companyName string) (string, error) {
	prompt := prompts.Format(videoPrompt, map[string]string{
		"CompanyName":       companyName,
		"ReferenceSentence": referenceSentence,
	})
	return g.client.GenerateVideo(ctx, prompt)
}
