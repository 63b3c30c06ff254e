package enrichment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minji/esg-compass/internal/llm"
	"github.com/minji/esg-compass/internal/types"
)

// stubClient implements llm.Client with canned responses.
type stubClient struct {
	jsonResponse string
	jsonErr      error
	imageURL     string
	videoURL     string
	lastPrompt   string
}

func (c *stubClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelRole) (string, error) {
	c.lastPrompt = prompt
	return c.jsonResponse, c.jsonErr
}

func (c *stubClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelRole) (string, error) {
	c.lastPrompt = prompt
	return c.jsonResponse, c.jsonErr
}

func (c *stubClient) GenerateImage(_ context.Context, prompt string) (string, error) {
	c.lastPrompt = prompt
	return c.imageURL, nil
}

func (c *stubClient) GenerateVideo(_ context.Context, prompt string) (string, error) {
	c.lastPrompt = prompt
	return c.videoURL, nil
}

func (c *stubClient) Close() error { return nil }

func TestPromptTemplatesResolvedAtInit(t *testing.T) {
	assert.NotEmpty(t, narrativePrompt)
	assert.NotEmpty(t, imagePrompt)
	assert.NotEmpty(t, videoPrompt)
}

func TestNew_ModeSwitch(t *testing.T) {
	gen, err := New(ModeMock, nil)
	require.NoError(t, err)
	assert.IsType(t, &MockGenerator{}, gen)

	gen, err = New(ModeLive, &stubClient{})
	require.NoError(t, err)
	assert.IsType(t, &GeminiGenerator{}, gen)

	_, err = New(ModeLive, nil)
	assert.Error(t, err, "live mode needs a client")

	_, err = New(Mode("offline"), nil)
	assert.Error(t, err)
}

func TestMockGenerator_Deterministic(t *testing.T) {
	gen := &MockGenerator{}
	ctx := context.Background()

	first, err := gen.GenerateNarrative(ctx, "한화솔루션", "태양광 셀 생산 확대", types.RiskSafe, 1.5)
	require.NoError(t, err)
	again, err := gen.GenerateNarrative(ctx, "한화솔루션", "태양광 셀 생산 확대", types.RiskSafe, 1.5)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	assert.Contains(t, first.Explanation, "한화솔루션")
	assert.Contains(t, first.Explanation, "태양광 셀 생산 확대")
	assert.NotEmpty(t, first.InvestmentReport)
	assert.NotEmpty(t, first.SocialPost)
}

func TestMockGenerator_EmptyReferenceSentence(t *testing.T) {
	gen := &MockGenerator{}

	narrative, err := gen.GenerateNarrative(context.Background(), "Acme", "", types.RiskNeutral, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, narrative.Explanation)
	assert.Contains(t, narrative.Explanation, "Acme")
}

func TestMockGenerator_NoMedia(t *testing.T) {
	gen := &MockGenerator{}
	ctx := context.Background()

	img, err := gen.GenerateImage(ctx, "ref", "Acme")
	require.NoError(t, err)
	assert.Empty(t, img)

	video, err := gen.GenerateVideo(ctx, "ref", "Acme")
	require.NoError(t, err)
	assert.Empty(t, video)
}

func TestFallbackNarrative_AlwaysNonEmpty(t *testing.T) {
	narrative := FallbackNarrative("Acme", "깨끗한 에너지")
	assert.Contains(t, narrative.Explanation, "깨끗한 에너지")
	assert.NotEmpty(t, narrative.InvestmentReport)
	assert.NotEmpty(t, narrative.SocialPost)
	assert.Empty(t, narrative.Alignment)
}

func TestGeminiGenerator_NarrativeValidOutput(t *testing.T) {
	client := &stubClient{jsonResponse: `{
		"explanation": "설명 텍스트",
		"investment_report": "리포트 텍스트",
		"sns_promotion": "홍보 텍스트"
	}`}
	gen := NewGeminiGenerator(client)

	narrative, err := gen.GenerateNarrative(context.Background(), "한화솔루션", "태양광", types.RiskSafe, 1.2)
	require.NoError(t, err)
	assert.Equal(t, "설명 텍스트", narrative.Explanation)
	assert.Equal(t, "리포트 텍스트", narrative.InvestmentReport)
	assert.Equal(t, "홍보 텍스트", narrative.SocialPost)
	assert.Contains(t, client.lastPrompt, "한화솔루션", "company name reaches the prompt")
}

func TestGeminiGenerator_NarrativeSchemaViolationRejected(t *testing.T) {
	client := &stubClient{jsonResponse: `{"explanation": "only one field"}`}
	gen := NewGeminiGenerator(client)

	_, err := gen.GenerateNarrative(context.Background(), "Acme", "", types.RiskNeutral, 0)
	assert.Error(t, err)
}

func TestGeminiGenerator_NarrativeClientError(t *testing.T) {
	client := &stubClient{jsonErr: errors.New("quota exceeded")}
	gen := NewGeminiGenerator(client)

	_, err := gen.GenerateNarrative(context.Background(), "Acme", "", types.RiskNeutral, 0)
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestGeminiGenerator_ImagePassthrough(t *testing.T) {
	client := &stubClient{imageURL: "data:image/png;base64,aGk="}
	gen := NewGeminiGenerator(client)

	url, err := gen.GenerateImage(context.Background(), "태양광", "한화솔루션")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGk=", url)
}
