// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/harmya/grifter-or-pro/internal/llm"
	"github.com/harmya/grifter-or-pro/internal/logging"
	"github.com/harmya/grifter-or-pro/internal/selection"
)

// Defaults
const (
	DefaultHost              = "0.0.0.0"
	DefaultPort              = 8000
	DefaultSampleCount       = selection.DefaultCount
	DefaultConcurrency       = 4
	DefaultRateLimitPerMin   = 30
	DefaultSelectionStrategy = selection.StrategyUniform
	maxSampleCount           = 10
	maxConcurrency           = 32
)

// DefaultAllowedOrigins are the browser origins the API accepts.
var DefaultAllowedOrigins = []string{
	"http://grifter.pro",
	"https://grifter.pro",
	"https://www.grifter.pro",
	"http://www.grifter.pro",
	"http://localhost:3000",
	"https://localhost:3000",
}

// Config holds every tunable of the application. It can be loaded from a JSON file
// and from the environment; zero values mean "use the default".
type Config struct {
	// Repository host
	GitHubToken  string `json:"github_token,omitempty"`
	GitHubAPIURL string `json:"github_api_url,omitempty"`

	// Oracle
	LLMProvider  string `json:"llm_provider,omitempty"` // openai or gemini
	LLMModel     string `json:"llm_model,omitempty"`
	OpenAIAPIKey string `json:"openai_api_key,omitempty"`
	OpenAIAPIURL string `json:"openai_api_url,omitempty"` // chat completions endpoint override
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`

	// Sampling
	SampleCount       int    `json:"sample_count,omitempty"`
	SelectionStrategy string `json:"selection_strategy,omitempty"` // uniform or oracle
	Concurrency       int    `json:"concurrency,omitempty"`

	// Server
	Host           string   `json:"host,omitempty"`
	Port           int      `json:"port,omitempty"`
	AllowedOrigins []string `json:"allowed_origins,omitempty"`
	RateLimitRPM   int      `json:"rate_limit_rpm,omitempty"`

	// Storage and logging
	DatabaseURL string `json:"database_url,omitempty"`
	LogLevel    string `json:"log_level,omitempty"`
	Verbose     bool   `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		LLMProvider:       string(llm.ProviderOpenAI),
		SampleCount:       DefaultSampleCount,
		SelectionStrategy: DefaultSelectionStrategy,
		Concurrency:       DefaultConcurrency,
		Host:              DefaultHost,
		Port:              DefaultPort,
		AllowedOrigins:    append([]string(nil), DefaultAllowedOrigins...),
		RateLimitRPM:      DefaultRateLimitPerMin,
		LogLevel:          "info",
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv builds a Config from environment variables read through getenv
// (os.Getenv in production). Unset variables leave fields at their zero value.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		GitHubToken:       getenv("GITHUB_TOKEN"),
		GitHubAPIURL:      getenv("GITHUB_API_URL"),
		LLMProvider:       getenv("LLM_PROVIDER"),
		LLMModel:          getenv("LLM_MODEL"),
		OpenAIAPIKey:      getenv("OPENAI_API_KEY"),
		OpenAIAPIURL:      getenv("OPENAI_API_URL"),
		GeminiAPIKey:      getenv("GEMINI_API_KEY"),
		SelectionStrategy: getenv("SELECTION_STRATEGY"),
		Host:              getenv("HOST"),
		DatabaseURL:       getenv("DATABASE_URL"),
		LogLevel:          getenv("LOG_LEVEL"),
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"SAMPLE_COUNT", &cfg.SampleCount},
		{"VERIFY_CONCURRENCY", &cfg.Concurrency},
		{"PORT", &cfg.Port},
		{"RATE_LIMIT_RPM", &cfg.RateLimitRPM},
	}
	for _, v := range ints {
		raw := strings.TrimSpace(getenv(v.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config error: %s must be an integer, got %q", v.name, raw)
		}
		*v.dst = n
	}

	if origins := getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values. Missing API keys are
// reported by the commands that need them, not here.
func (c *Config) Validate() error {
	if _, err := llm.ParseProvider(c.LLMProvider); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.SelectionStrategy {
	case "", selection.StrategyUniform, selection.StrategyOracle:
	default:
		return fmt.Errorf("config error: 'selection_strategy' must be %q or %q", selection.StrategyUniform, selection.StrategyOracle)
	}

	if c.SampleCount < 0 || c.SampleCount > maxSampleCount {
		return fmt.Errorf("config error: 'sample_count' must be between 1 and %d", maxSampleCount)
	}
	if c.Concurrency < 0 || c.Concurrency > maxConcurrency {
		return fmt.Errorf("config error: 'concurrency' must be between 1 and %d", maxConcurrency)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid TCP port")
	}
	if c.RateLimitRPM < 0 {
		return fmt.Errorf("config error: 'rate_limit_rpm' must be non-negative")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	strs := []struct{ dst, def *string }{
		{&result.GitHubToken, &defaults.GitHubToken},
		{&result.GitHubAPIURL, &defaults.GitHubAPIURL},
		{&result.LLMProvider, &defaults.LLMProvider},
		{&result.LLMModel, &defaults.LLMModel},
		{&result.OpenAIAPIKey, &defaults.OpenAIAPIKey},
		{&result.OpenAIAPIURL, &defaults.OpenAIAPIURL},
		{&result.GeminiAPIKey, &defaults.GeminiAPIKey},
		{&result.SelectionStrategy, &defaults.SelectionStrategy},
		{&result.Host, &defaults.Host},
		{&result.DatabaseURL, &defaults.DatabaseURL},
		{&result.LogLevel, &defaults.LogLevel},
	}
	for _, s := range strs {
		if *s.dst == "" {
			*s.dst = *s.def
		}
	}

	ints := []struct{ dst, def *int }{
		{&result.SampleCount, &defaults.SampleCount},
		{&result.Concurrency, &defaults.Concurrency},
		{&result.Port, &defaults.Port},
		{&result.RateLimitRPM, &defaults.RateLimitRPM},
	}
	for _, i := range ints {
		if *i.dst == 0 {
			*i.dst = *i.def
		}
	}

	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = append([]string(nil), defaults.AllowedOrigins...)
	}

	// Bools cannot distinguish unset from false: either side enables verbose.
	result.Verbose = result.Verbose || defaults.Verbose
	return result
}

// Provider returns the parsed LLM provider, defaulting to OpenAI.
func (c *Config) Provider() llm.Provider {
	p, err := llm.ParseProvider(c.LLMProvider)
	if err != nil {
		return llm.ProviderOpenAI
	}
	return p
}

// LLMAPIKey returns the API key of the configured provider.
func (c *Config) LLMAPIKey() string {
	if c.Provider() == llm.ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// LLMConfig returns the model configuration for the selected provider.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.ConfigFor(c.Provider(), c.LLMModel)
	if cfg.Provider == llm.ProviderOpenAI {
		cfg.BaseURL = c.OpenAIAPIURL
	}
	return cfg
}

// Addr is the server listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Load merges a config file (optional), the environment and the built-in defaults,
// in that order of precedence, and validates the result.
func Load(path string, getenv func(string) string) (Config, error) {
	fileCfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		fileCfg = loaded
	}

	envCfg, err := FromEnv(getenv)
	if err != nil {
		return Config{}, err
	}

	withEnv := fileCfg.MergeWithDefaults(envCfg)
	cfg := withEnv.MergeWithDefaults(Defaults())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
