// Package llm provides centralized generative-model configuration and client abstractions.
package llm

// ModelRole identifies what a model is used for in the enrichment stage.
type ModelRole string

const (
	// RoleNarrative generates explanation/report/promotion text.
	RoleNarrative ModelRole = "narrative"
	// RoleImage generates the company illustration.
	RoleImage ModelRole = "image"
	// RoleVideo generates the company intro video.
	RoleVideo ModelRole = "video"
)

// Provider represents a generative-model provider.
type Provider string

// Provider constants define supported providers.
const (
	// ProviderGemini is the Google Gemini provider.
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application.
type Config struct {
	Provider Provider
	Models   map[ModelRole]string
}

// DefaultConfig returns the default configuration (currently Gemini).
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini model set.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelRole]string{
			RoleNarrative: "gemini-2.5-flash",
			RoleImage:     "gemini-2.5-flash-image",
			RoleVideo:     "veo-3.0-generate-001",
		},
	}
}

// GetModel returns the model name for a role, empty when unconfigured.
func (c *Config) GetModel(role ModelRole) string {
	return c.Models[role]
}
