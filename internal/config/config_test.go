package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"OPENROUTER_API_KEY", "OPENROUTER_BASE_URL", "OPENROUTER_MODEL",
		"CHATBLOCKS_REFERER", "CHATBLOCKS_TITLE", "CHATBLOCKS_DB",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.3, cfg.Generation.Temperature)
	assert.Equal(t, 2500, cfg.Generation.MaxTokens)
	assert.Equal(t, 0.9, cfg.Generation.TopP)
	assert.Equal(t, 1024, cfg.Image.MaxWidth)
	assert.Equal(t, 120*time.Second, cfg.GetTimeout())
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Provider, cfg.Provider)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
provider:
  model: anthropic/claude-3.5-haiku
  timeout: 30s
generation:
  max_tokens: 800
render:
  format: html
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-3.5-haiku", cfg.Provider.Model)
	assert.Equal(t, 30*time.Second, cfg.GetTimeout())
	assert.Equal(t, 800, cfg.Generation.MaxTokens)
	assert.Equal(t, "html", cfg.Render.Format)
	// untouched keys keep their defaults
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.Provider.BaseURL)
	assert.Equal(t, 0.3, cfg.Generation.Temperature)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	tests := map[string]string{
		"bad yaml":    "provider: [",
		"bad format":  "render:\n  format: pdf\n",
		"bad top_p":   "generation:\n  top_p: 1.5\n",
		"bad url":     "provider:\n  base_url: not a url\n",
		"bad timeout": "provider:\n  timeout: soon\n",
		"bad quality": "image:\n  quality: 150\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("OPENROUTER_BASE_URL", "http://127.0.0.1:9999/v1")
	t.Setenv("OPENROUTER_MODEL", "env/model")
	t.Setenv("CHATBLOCKS_REFERER", "https://example.com")
	t.Setenv("CHATBLOCKS_TITLE", "Env Title")
	t.Setenv("CHATBLOCKS_DB", "/tmp/x.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.Provider.APIKey)
	assert.Equal(t, "http://127.0.0.1:9999/v1", cfg.Provider.BaseURL)
	assert.Equal(t, "env/model", cfg.Provider.Model)
	assert.Equal(t, "https://example.com", cfg.Provider.Referer)
	assert.Equal(t, "Env Title", cfg.Provider.Title)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.DatabasePath)
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Provider.Model = "saved/model"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
