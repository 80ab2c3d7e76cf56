// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the HTTP server, catalog data, LLM providers, and rate limiting.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/studygate/partner-bot-go/internal/genai"
)

// Config holds all application configuration
type Config struct {
	// LLM Configuration
	GeminiAPIKey   string // Gemini API key for slot extraction fallback
	GroqAPIKey     string // Groq API key (OpenAI-compatible provider)
	CerebrasAPIKey string // Cerebras API key (OpenAI-compatible provider)

	// LLM Model Configuration (optional, defaults apply if empty)
	GeminiModels   []string // Ordered Gemini model chain, primary first
	GroqModels     []string // Ordered Groq model chain, primary first
	CerebrasModels []string // Ordered Cerebras model chain, primary first

	// LLMProviders is the failover order across providers.
	// Empty means the default order from the genai package.
	LLMProviders []string

	// FallbackTimeout bounds a single LLM extraction attempt inside a route.
	FallbackTimeout time.Duration

	// LLMBudgetPerHour caps LLM-backed extractions per partner per hour.
	// Zero disables the budget.
	LLMBudgetPerHour float64

	// Partner Rate Limits (Token Bucket Algorithm)
	PartnerRateBurst        float64 // Maximum burst tokens per partner
	PartnerRateRefillPerSec float64 // Tokens refilled per second

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir         string        // Data directory for the SQLite catalog database
	SnapshotTTL     time.Duration // How long a catalog snapshot stays fresh
	CatalogSeedPath string        // Optional JSON seed imported into the catalog at startup
	FAQPath         string        // Optional JSON file with FAQ documents for the BM25 index

	// Sentry Configuration
	SentryToken       string
	SentryHost        string
	SentryEnvironment string
	SentryRelease     string
	SentrySampleRate  float64
	SentryDebug       bool

	// Better Stack Configuration
	BetterStackToken    string
	BetterStackEndpoint string
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// LLM Configuration
		GeminiAPIKey:   getEnv(EnvGeminiAPIKey, ""),
		GroqAPIKey:     getEnv(EnvGroqAPIKey, ""),
		CerebrasAPIKey: getEnv(EnvCerebrasAPIKey, ""),

		// LLM Model Configuration (empty = use defaults from genai package)
		GeminiModels:   getListEnv(EnvGeminiModels),
		GroqModels:     getListEnv(EnvGroqModels),
		CerebrasModels: getListEnv(EnvCerebrasModels),

		// LLM Provider Configuration
		LLMProviders: getListEnv(EnvLLMProviders),

		FallbackTimeout:  getDurationEnv(EnvFallbackTimeout, LLMExtraction),
		LLMBudgetPerHour: getFloatEnv(EnvLLMBudgetPerHour, 60.0),

		// Partner Rate Limits
		PartnerRateBurst:        getFloatEnv(EnvPartnerRateBurst, 20.0),
		PartnerRateRefillPerSec: getFloatEnv(EnvPartnerRateRefill, 1.0),

		// Metrics Authentication
		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		// Server Configuration
		Port:            getEnv(EnvPort, "8080"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),

		// Data Configuration
		DataDir:         getEnv(EnvDataDir, getDefaultDataDir()),
		SnapshotTTL:     getDurationEnv(EnvSnapshotTTL, 15*time.Minute),
		CatalogSeedPath: getEnv(EnvCatalogSeedPath, ""),
		FAQPath:         getEnv(EnvFAQPath, ""),

		// Sentry Configuration
		SentryToken:       getEnv(EnvSentryToken, ""),
		SentryHost:        getEnv(EnvSentryHost, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentryRelease:     getEnv(EnvSentryRelease, ""),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),
		SentryDebug:       getBoolEnv(EnvSentryDebug, false),

		// Better Stack Configuration
		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New(EnvDataDir+" is required"))
	}
	if c.SnapshotTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvSnapshotTTL, c.SnapshotTTL))
	}
	if c.FallbackTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvFallbackTimeout, c.FallbackTimeout))
	}
	if c.LLMBudgetPerHour < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %v", EnvLLMBudgetPerHour, c.LLMBudgetPerHour))
	}
	if c.PartnerRateBurst <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvPartnerRateBurst, c.PartnerRateBurst))
	}
	if c.PartnerRateRefillPerSec <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvPartnerRateRefill, c.PartnerRateRefillPerSec))
	}
	if c.SentrySampleRate < 0 || c.SentrySampleRate > 1 {
		errs = append(errs, fmt.Errorf("%s must be in [0, 1], got %v", EnvSentrySampleRate, c.SentrySampleRate))
	}
	for _, p := range c.LLMProviders {
		switch genai.Provider(p) {
		case genai.ProviderGemini, genai.ProviderGroq, genai.ProviderCerebras:
		default:
			errs = append(errs, fmt.Errorf("%s contains unknown provider %q", EnvLLMProviders, p))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getListEnv retrieves a comma-separated environment variable as a slice.
// Empty entries are dropped; a missing variable yields nil.
func getListEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// getDefaultDataDir returns platform-specific default data directory
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}

// SQLitePath returns the full path to the SQLite catalog database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "catalog.db")
}

// HasLLMProvider returns true if at least one LLM provider is configured.
func (c *Config) HasLLMProvider() bool {
	return c.GeminiAPIKey != "" || c.GroqAPIKey != "" || c.CerebrasAPIKey != ""
}

// ToLLMConfig maps the loaded configuration onto the genai provider config.
// Provider order and model chains fall back to the genai defaults when unset.
func (c *Config) ToLLMConfig() genai.LLMConfig {
	providers := make([]genai.Provider, 0, len(c.LLMProviders))
	for _, p := range c.LLMProviders {
		providers = append(providers, genai.Provider(p))
	}
	if len(providers) == 0 {
		providers = genai.DefaultProviders
	}

	return genai.LLMConfig{
		Providers: providers,
		Gemini: genai.ProviderConfig{
			APIKey: c.GeminiAPIKey,
			Models: c.GeminiModels,
		},
		Groq: genai.ProviderConfig{
			APIKey: c.GroqAPIKey,
			Models: c.GroqModels,
		},
		Cerebras: genai.ProviderConfig{
			APIKey: c.CerebrasAPIKey,
			Models: c.CerebrasModels,
		},
		RetryConfig: genai.RetryConfig{
			MaxAttempts:  genai.DefaultMaxRetryAttempts,
			InitialDelay: genai.DefaultInitialRetryDelay,
			MaxDelay:     genai.DefaultMaxRetryDelay,
		},
	}
}
