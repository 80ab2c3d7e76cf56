// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "PARTNERBOT_PORT"
	EnvLogLevel        = "PARTNERBOT_LOG_LEVEL"
	EnvShutdownTimeout = "PARTNERBOT_SHUTDOWN_TIMEOUT"

	// Data
	EnvDataDir         = "PARTNERBOT_DATA_DIR"
	EnvSnapshotTTL     = "PARTNERBOT_SNAPSHOT_TTL"
	EnvCatalogSeedPath = "PARTNERBOT_CATALOG_SEED_PATH"
	EnvFAQPath         = "PARTNERBOT_FAQ_PATH"

	// LLM Providers
	EnvLLMProviders   = "PARTNERBOT_LLM_PROVIDERS"
	EnvGeminiAPIKey   = "PARTNERBOT_GEMINI_API_KEY"
	EnvGeminiModels   = "PARTNERBOT_GEMINI_MODELS"
	EnvGroqAPIKey     = "PARTNERBOT_GROQ_API_KEY"
	EnvGroqModels     = "PARTNERBOT_GROQ_MODELS"
	EnvCerebrasAPIKey = "PARTNERBOT_CEREBRAS_API_KEY"
	EnvCerebrasModels = "PARTNERBOT_CEREBRAS_MODELS"

	// LLM Behavior
	EnvFallbackTimeout  = "PARTNERBOT_FALLBACK_TIMEOUT"
	EnvLLMBudgetPerHour = "PARTNERBOT_LLM_BUDGET_PER_HOUR"

	// Rate Limits
	EnvPartnerRateBurst  = "PARTNERBOT_PARTNER_RATE_BURST"
	EnvPartnerRateRefill = "PARTNERBOT_PARTNER_RATE_REFILL"

	// Metrics
	EnvMetricsUsername = "PARTNERBOT_METRICS_USERNAME"
	EnvMetricsPassword = "PARTNERBOT_METRICS_PASSWORD"

	// Sentry
	EnvSentryToken       = "PARTNERBOT_SENTRY_TOKEN"
	EnvSentryHost        = "PARTNERBOT_SENTRY_HOST"
	EnvSentryEnvironment = "PARTNERBOT_SENTRY_ENVIRONMENT"
	EnvSentryRelease     = "PARTNERBOT_SENTRY_RELEASE"
	EnvSentrySampleRate  = "PARTNERBOT_SENTRY_SAMPLE_RATE"
	EnvSentryDebug       = "PARTNERBOT_SENTRY_DEBUG"

	// Better Stack
	EnvBetterStackToken    = "PARTNERBOT_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "PARTNERBOT_BETTERSTACK_ENDPOINT"
)
