package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[server]
port = "9000"

[llm]
provider = "openai"
model = "gpt-4"

[dedupe]
similarity_threshold = 0.4

[layout]
per_row = 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 0.4, cfg.Dedupe.SimilarityThreshold)
	assert.Equal(t, 3, cfg.ProjectionLayout().PerRow)
	// untouched sections keep their defaults
	assert.Equal(t, DefaultEventPrompt, cfg.Extraction.Event)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
store:
  driver: memgraph
viewport:
  fit_duration_ms: 250
  zoom_factor: 1.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "memgraph", cfg.Store.Driver)
	opts := cfg.ViewportOptions()
	assert.Equal(t, 250*time.Millisecond, opts.FitDuration)
	assert.Equal(t, 1.5, opts.ZoomFactor)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := writeFile(t, "bad.toml", "[server\nport=")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("SIMILARITY_THRESHOLD", "0.25")
	t.Setenv("ADMIN_USERNAME", "ops")

	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, 0.25, cfg.Dedupe.SimilarityThreshold)
	assert.Equal(t, "ops", cfg.Admin.Username)
	assert.Equal(t, "json", cfg.Store.Driver)
	assert.Equal(t, time.Hour, cfg.TokenTTL())
}
