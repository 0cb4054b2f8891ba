// Package config loads the application configuration from a YAML file,
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// LLM providers
const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
	ProviderOllama   = "ollama"
	ProviderGitHub   = "github"
	ProviderAzure    = "azure"
)

// DefaultModel is the model used when none is configured for googleai.
const DefaultModel = "gemini-3-flash-preview"

var defaultModels = map[string]string{
	ProviderGoogleAI: DefaultModel,
	ProviderOpenAI:   "gpt-4o-mini",
	ProviderGitHub:   "gpt-4o-mini",
	ProviderOllama:   "llava",
}

// Config represents the application configuration
type Config struct {
	LogMode string        `yaml:"log_mode"`
	Storage StorageConfig `yaml:"storage"`
	LLM     LLMConfig     `yaml:"llm"`
	Server  ServerConfig  `yaml:"server"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
}

// ModelName returns the configured model, or the provider's default. For
// azure the model is the deployment name and has no default.
func (l LLMConfig) ModelName() string {
	if l.Model != "" {
		return l.Model
	}
	return defaultModels[l.Provider]
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		LogMode: "development",
		Storage: StorageConfig{Driver: DriverSQLite, DSN: "fridjy.db"},
		LLM:     LLMConfig{Provider: ProviderGoogleAI},
		Server:  ServerConfig{Addr: ":8080"},
		Metrics: MetricsConfig{Enabled: true, Addr: ":9090", Path: "/metrics"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that only need part of the
// configuration.
func Read(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from the environment. getenv is usually
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, name string) {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			*dst = v
		}
	}
	set(&c.LogMode, "FRIDJY_LOG_MODE")
	set(&c.Storage.Driver, "FRIDJY_STORAGE_DRIVER")
	set(&c.Storage.DSN, "FRIDJY_STORAGE_DSN")
	set(&c.LLM.Provider, "FRIDJY_LLM_PROVIDER")
	set(&c.LLM.Model, "FRIDJY_LLM_MODEL")
	set(&c.LLM.BaseURL, "FRIDJY_LLM_BASE_URL")
	set(&c.Server.Addr, "FRIDJY_SERVER_ADDR")

	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case ProviderGoogleAI:
			set(&c.LLM.APIKey, "GOOGLE_API_KEY")
		case ProviderOpenAI:
			set(&c.LLM.APIKey, "OPENAI_API_KEY")
		case ProviderGitHub:
			set(&c.LLM.APIKey, "GITHUB_TOKEN")
		case ProviderAzure:
			set(&c.LLM.APIKey, "AZURE_OPENAI_API_KEY")
		}
	}
	set(&c.LLM.APIKey, "FRIDJY_LLM_API_KEY")

	if c.LLM.Provider == ProviderAzure {
		if c.LLM.BaseURL == "" {
			set(&c.LLM.BaseURL, "AZURE_OPENAI_ENDPOINT")
		}
		if c.LLM.Model == "" {
			set(&c.LLM.Model, "AZURE_OPENAI_DEPLOYMENT_NAME")
		}
	}
}

// Validate checks that the configuration can be used to start the app.
func (c *Config) Validate() error {
	if err := c.ValidateStorage(); err != nil {
		return err
	}
	if err := c.ValidateLLM(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalid)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("%w: metrics.addr is required when metrics are enabled", ErrInvalid)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with / when metrics are enabled", ErrInvalid)
	}
	return nil
}

// ValidateStorage checks the storage section only.
func (c *Config) ValidateStorage() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("%w: storage.dsn is required for driver %q", ErrInvalid, c.Storage.Driver)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalid, c.Storage.Driver)
	}
	return nil
}

// ValidateLLM checks the llm section only.
func (c *Config) ValidateLLM() error {
	switch c.LLM.Provider {
	case ProviderGoogleAI, ProviderOpenAI, ProviderGitHub:
		if strings.TrimSpace(c.LLM.APIKey) == "" {
			return fmt.Errorf("%w: llm.api_key is required for provider %q", ErrInvalid, c.LLM.Provider)
		}
	case ProviderAzure:
		if strings.TrimSpace(c.LLM.APIKey) == "" || c.LLM.BaseURL == "" || c.LLM.Model == "" {
			return fmt.Errorf("%w: azure needs llm.api_key, llm.base_url and llm.model (deployment)", ErrInvalid)
		}
	case ProviderOllama:
	default:
		return fmt.Errorf("%w: unknown llm provider %q", ErrInvalid, c.LLM.Provider)
	}
	return nil
}
