// Package config provides centralized timeout constants for the application.
//
// These values are tuned for a synchronous routing API sitting between a
// partner-facing chat frontend and the LLM providers:
//   - The frontend blocks on POST /api/v1/route, so the whole pipeline has
//     to finish within a few seconds to keep the conversation responsive.
//   - Rule extraction and catalog matching are in-memory and effectively
//     free; the only slow parts are the LLM call and a cold snapshot load.
//   - SQLite in WAL mode handles catalog reads quickly but needs a generous
//     busy timeout while a seed import is writing.
package config

import "time"

// Routing timeouts
const (
	// RouteProcessing is the timeout for handling a single route request.
	// Covers rule extraction, an optional LLM extraction with retries and
	// provider failover, and catalog resolution.
	//
	// Set to 10s because:
	//   - Rules and catalog matching complete in microseconds
	//   - One LLM attempt is bounded by LLMExtraction (4s)
	//   - Leaves room for one retry plus a provider failover
	RouteProcessing = 10 * time.Second

	// LLMExtraction is the timeout for a single LLM slot extraction call.
	// Completion models usually answer structured extraction prompts in
	// under 2s; anything slower is better spent falling back to rules.
	LLMExtraction = 4 * time.Second
)

// HTTP server timeouts
const (
	// ServerHTTPRead is the HTTP server read timeout.
	// Route requests carry small JSON payloads (a few conversation turns).
	ServerHTTPRead = 10 * time.Second

	// ServerHTTPWrite is the HTTP server write timeout.
	// Should accommodate RouteProcessing plus response serialization.
	ServerHTTPWrite = 15 * time.Second

	// ServerHTTPIdle is the HTTP server idle timeout for keep-alive connections.
	ServerHTTPIdle = 120 * time.Second
)

// Database timeouts
const (
	// DatabaseBusyTimeout is SQLite busy_timeout pragma value.
	// Handles write contention while a catalog seed import is running.
	DatabaseBusyTimeout = 30 * time.Second

	// DatabaseConnMaxLifetime is the maximum lifetime of database connections.
	// Prevents stale connections and allows connection pool refresh.
	DatabaseConnMaxLifetime = time.Hour
)

// Background job intervals
const (
	// RateLimiterCleanupInterval is how often inactive partner rate limiters are cleaned.
	RateLimiterCleanupInterval = 5 * time.Minute
)

// Graceful shutdown
const (
	// GracefulShutdown is the timeout for graceful server shutdown.
	// Allows in-flight requests to complete before forceful termination.
	GracefulShutdown = 30 * time.Second
)
