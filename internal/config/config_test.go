package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{
		"dataset": "data/companies.csv",
		"top_n": 5,
		"enrichment_mode": "mock",
		"port": 8080
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "data/companies.csv", cfg.Dataset)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, "mock", cfg.EnrichmentMode)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{}).Validate())
	assert.NoError(t, (&Config{EnrichmentMode: "mock"}).Validate())
	assert.NoError(t, (&Config{EnrichmentMode: "live", APIKey: "key"}).Validate())

	assert.Error(t, (&Config{TopN: -1}).Validate())
	assert.Error(t, (&Config{Port: 70000}).Validate())
	assert.Error(t, (&Config{EnrichmentMode: "offline"}).Validate())
	assert.Error(t, (&Config{EnrichmentMode: "live"}).Validate(), "live without an API key")
}

func TestMergeWithDefaults(t *testing.T) {
	base := Config{Dataset: "explicit.csv", TopN: 0}
	merged := base.MergeWithDefaults(Config{Dataset: "default.csv", TopN: 3, Port: 8080})

	assert.Equal(t, "explicit.csv", merged.Dataset, "explicit value wins")
	assert.Equal(t, 3, merged.TopN, "zero value falls back to default")
	assert.Equal(t, 8080, merged.Port)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATASET_PATH", "env.csv")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://localhost/esg")

	t.Setenv("PORT", "9090")

	cfg := FromEnv()
	assert.Equal(t, "env.csv", cfg.Dataset)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://localhost/esg", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.Port)
}

func TestFromEnv_DatasetURLFallback(t *testing.T) {
	t.Setenv("DATASET_PATH", "")
	t.Setenv("DATASET_URL", "https://example.com/companies.csv")

	cfg := FromEnv()
	assert.Equal(t, "https://example.com/companies.csv", cfg.Dataset)
}

func TestMode(t *testing.T) {
	assert.Equal(t, "mock", (&Config{}).Mode(), "no key defaults to mock")
	assert.Equal(t, "live", (&Config{APIKey: "key"}).Mode(), "key defaults to live")
	assert.Equal(t, "mock", (&Config{APIKey: "key", EnrichmentMode: "mock"}).Mode(),
		"explicit setting wins over key presence")
}
