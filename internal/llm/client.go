package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over generative-model providers.
type Client interface {
	// GenerateContent generates free text for the given role's model.
	GenerateContent(ctx context.Context, prompt string, role ModelRole) (string, error)
	// GenerateJSON generates JSON content for the given role's model.
	GenerateJSON(ctx context.Context, prompt string, role ModelRole) (string, error)
	// GenerateImage generates an illustration and returns it as a data URL,
	// or empty when the model produced no image.
	GenerateImage(ctx context.Context, prompt string) (string, error)
	// GenerateVideo generates a short video and returns its URL, or empty
	// when the model produced no video.
	GenerateVideo(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a client for the configured provider.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	// Only Gemini is wired today; the switch keeps the seam visible.
	switch config.Provider {
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
	apiKey string
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
		apiKey: apiKey,
	}, nil
}

// GenerateContent generates free text using the role's configured model.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, role ModelRole) (string, error) {
	modelName := c.config.GetModel(role)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for role %s", role)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(narrativeTemperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// narrativeTemperature balances varied phrasing against staying on the
// requested JSON structure.
const narrativeTemperature = 0.7

// GenerateJSON generates JSON content using the role's configured model.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, role ModelRole) (string, error) {
	modelName := c.config.GetModel(role)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for role %s", role)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(narrativeTemperature)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	// Clean any markdown code block wrappers
	return CleanJSONBlock(text), nil
}

// GenerateImage generates an illustration and returns it as a data URL.
// A response without inline image data yields an empty string, not an
// error: missing visuals are an expected outcome for the caller.
func (c *GeminiClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	modelName := c.config.GetModel(RoleImage)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for role %s", RoleImage)
	}

	model := c.client.GenerativeModel(modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate image: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				encoded := base64.StdEncoding.EncodeToString(blob.Data)
				return fmt.Sprintf("data:%s;base64,%s", blob.MIMEType, encoded), nil
			}
		}
	}
	return "", nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
