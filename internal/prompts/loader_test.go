package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedPrompts(t *testing.T) {
	for _, key := range []string{"company_narrative", "company_image", "company_video"} {
		prompt, err := Get("enrichment.json", key)
		require.NoError(t, err, key)
		assert.NotEmpty(t, prompt, key)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("enrichment.json", "nonexistent")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "company_narrative")
	assert.Error(t, err)
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	result := Format("기업: {{.CompanyName}}, 근거: {{.ReferenceSentence}}", map[string]string{
		"CompanyName":       "한화솔루션",
		"ReferenceSentence": "태양광",
	})
	assert.Equal(t, "기업: 한화솔루션, 근거: 태양광", result)
}

func TestFormat_UnusedPlaceholderSurvives(t *testing.T) {
	result := Format("{{.Known}} {{.Unknown}}", map[string]string{"Known": "x"})
	assert.Equal(t, "x {{.Unknown}}", result)
}

func TestFormat_NarrativePromptPlaceholders(t *testing.T) {
	template := MustGet("enrichment.json", "company_narrative")
	result := Format(template, map[string]string{
		"CompanyName":       "Acme",
		"ReferenceSentence": "ref",
		"RiskLabel":         "안전형",
		"SentimentScore":    "1.5",
	})
	assert.NotContains(t, result, "{{.", "all placeholders are filled")
}
