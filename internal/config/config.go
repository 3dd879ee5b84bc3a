// Package config loads chatblocks settings from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// Config holds all chatblocks configuration.
type Config struct {
	Provider   ProviderConfig   `yaml:"provider"`
	Generation GenerationConfig `yaml:"generation"`
	Storage    StorageConfig    `yaml:"storage"`
	Render     RenderConfig     `yaml:"render"`
	Image      ImageConfig      `yaml:"image"`
}

// ProviderConfig configures the chat completions endpoint.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	Referer string `yaml:"referer"`
	Title   string `yaml:"title"`
	Timeout string `yaml:"timeout"`
}

// GenerationConfig configures sampling and reply post-processing.
type GenerationConfig struct {
	Temperature  float64 `yaml:"temperature"`
	MaxTokens    int     `yaml:"max_tokens"`
	TopP         float64 `yaml:"top_p"`
	SystemPrompt string  `yaml:"system_prompt"` // empty uses the built-in tutor prompt
	Disclaimer   string  `yaml:"disclaimer"`
}

// StorageConfig configures the activity store.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// RenderConfig configures CLI output.
type RenderConfig struct {
	Format string `yaml:"format"` // plain, html, terminal
	Width  int    `yaml:"width"`
}

// ImageConfig configures attached image preparation.
type ImageConfig struct {
	MaxWidth int `yaml:"max_width"`
	Quality  int `yaml:"quality"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL: "https://openrouter.ai/api/v1",
			Model:   "openai/gpt-4o-mini",
			Referer: "https://github.com/riverfjs/chatblocks-go",
			Title:   "chatblocks study assistant",
			Timeout: "120s",
		},
		Generation: GenerationConfig{
			Temperature: 0.3,
			MaxTokens:   2500,
			TopP:        0.9,
			Disclaimer:  "*Disclaimer: AI can make mistakes. Always check answers against your textbook or teacher.*",
		},
		Storage: StorageConfig{
			DatabasePath: defaultDatabasePath(),
		},
		Render: RenderConfig{
			Format: "terminal",
		},
		Image: ImageConfig{
			MaxWidth: 1024,
			Quality:  80,
		},
	}
}

func defaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "chatblocks.db"
	}
	return filepath.Join(dir, "chatblocks", "activity.db")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		c.Provider.APIKey = key
	}
	if url := os.Getenv("OPENROUTER_BASE_URL"); url != "" {
		c.Provider.BaseURL = url
	}
	if model := os.Getenv("OPENROUTER_MODEL"); model != "" {
		c.Provider.Model = model
	}
	if referer := os.Getenv("CHATBLOCKS_REFERER"); referer != "" {
		c.Provider.Referer = referer
	}
	if title := os.Getenv("CHATBLOCKS_TITLE"); title != "" {
		c.Provider.Title = title
	}
	if path := os.Getenv("CHATBLOCKS_DB"); path != "" {
		c.Storage.DatabasePath = path
	}
}

// Validate checks value ranges. The API key is not required here; only
// commands that call the provider need it.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Provider),
		validation.Field(&c.Generation),
		validation.Field(&c.Storage),
		validation.Field(&c.Render),
		validation.Field(&c.Image),
	)
}

func (p ProviderConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BaseURL, validation.Required, is.URL),
		validation.Field(&p.Model, validation.Required),
		validation.Field(&p.Timeout, validation.By(func(value any) error {
			s, _ := value.(string)
			if s == "" {
				return nil
			}
			if _, err := time.ParseDuration(s); err != nil {
				return validation.NewError("config.provider.timeout", "must be a duration such as 90s")
			}
			return nil
		})),
	)
}

func (g GenerationConfig) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Temperature, validation.Min(0.0), validation.Max(2.0)),
		validation.Field(&g.MaxTokens, validation.Min(1)),
		validation.Field(&g.TopP, validation.Min(0.0), validation.Max(1.0)),
	)
}

func (s StorageConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.DatabasePath, validation.Required),
	)
}

func (r RenderConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Format, validation.In("plain", "html", "terminal")),
		validation.Field(&r.Width, validation.Min(0)),
	)
}

func (i ImageConfig) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.MaxWidth, validation.Min(1)),
		validation.Field(&i.Quality, validation.Min(1), validation.Max(100)),
	)
}

// GetTimeout returns the provider timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Provider.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}
