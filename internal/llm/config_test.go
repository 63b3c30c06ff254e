package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_ModelsPerRole(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(RoleNarrative))
	assert.Equal(t, "gemini-2.5-flash-image", cfg.GetModel(RoleImage))
	assert.Equal(t, "veo-3.0-generate-001", cfg.GetModel(RoleVideo))
}

func TestGetModel_UnconfiguredRole(t *testing.T) {
	cfg := &Config{Provider: ProviderGemini, Models: map[ModelRole]string{}}
	assert.Empty(t, cfg.GetModel(RoleNarrative))
}
