// Package main provides the partner routing server entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/studygate/partner-bot-go/internal/buildinfo"
	"github.com/studygate/partner-bot-go/internal/catalog"
	"github.com/studygate/partner-bot-go/internal/config"
	"github.com/studygate/partner-bot-go/internal/data"
	"github.com/studygate/partner-bot-go/internal/faq"
	"github.com/studygate/partner-bot-go/internal/genai"
	"github.com/studygate/partner-bot-go/internal/logger"
	"github.com/studygate/partner-bot-go/internal/metrics"
	"github.com/studygate/partner-bot-go/internal/query"
	"github.com/studygate/partner-bot-go/internal/ratelimit"
	"github.com/studygate/partner-bot-go/internal/router"
	"github.com/studygate/partner-bot-go/internal/sentry"
	"github.com/studygate/partner-bot-go/internal/server"
	"github.com/studygate/partner-bot-go/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger with optional Better Stack shipping
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log = log.WithField("service", "partner-bot")
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Set as default logger so context values (partnerID, sessionID,
	// requestID) flow into package-level slog calls via ContextHandler.
	slog.SetDefault(log.Logger)

	startEntry := log
	if buildinfo.Version != "" {
		startEntry = startEntry.WithField("version", buildinfo.Version).WithField("commit", buildinfo.Commit)
	}
	startEntry.Info("Starting partner routing server")
	if cfg.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	// Initialize Sentry error tracking (no-op without a token)
	release := cfg.SentryRelease
	if release == "" {
		release = buildinfo.Version
	}
	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.SentryEnvironment,
		Release:     release,
		SampleRate:  cfg.SentrySampleRate,
		Debug:       cfg.SentryDebug,
	}); err != nil {
		log.WithError(err).Warn("Sentry initialization failed, error tracking disabled")
	} else if sentry.IsEnabled() {
		log.WithField("environment", cfg.SentryEnvironment).Info("Sentry error tracking enabled")
	}

	// Connect to the catalog database
	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Error("Failed to connect to database")
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seed the catalog: external file when configured, built-in data when
	// the database is empty.
	if err := seedCatalog(ctx, db, cfg, log); err != nil {
		log.WithError(err).Error("Failed to seed catalog")
		os.Exit(1)
	}

	// Create Prometheus registry with standard collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Catalog snapshot provider and query builder
	snapshots := catalog.NewProvider(db, cfg.SnapshotTTL, m)
	matcher := catalog.NewMatcher(catalog.DefaultThresholds)
	builder := query.NewBuilder(snapshots, matcher, m)

	// FAQ index for general-intent answers
	faqIndex := faq.NewIndex(log, m)
	faqDocs := data.FAQDocuments()
	if cfg.FAQPath != "" {
		loaded, err := faq.LoadDocuments(cfg.FAQPath)
		if err != nil {
			log.WithError(err).WithField("path", cfg.FAQPath).Warn("Failed to load FAQ file, using built-in documents")
		} else {
			faqDocs = loaded
		}
	}
	if err := faqIndex.Initialize(faqDocs); err != nil {
		log.WithError(err).Warn("FAQ index initialization failed, general answers disabled")
		faqIndex = nil
	} else {
		log.WithField("documents", faqIndex.Size()).Info("FAQ index initialized")
	}

	// LLM slot extractor chain (optional, requires at least one API key)
	var fallback router.FallbackExtractor
	var extractor genai.SlotExtractor
	var llmBudget *ratelimit.LLMBudget
	if cfg.HasLLMProvider() {
		extractor, err = genai.NewSlotExtractor(ctx, cfg.ToLLMConfig(), m)
		if err != nil {
			log.WithError(err).Warn("Failed to create LLM extractor, fallback stage disabled")
		} else if extractor != nil {
			if cfg.LLMBudgetPerHour > 0 {
				llmBudget = ratelimit.NewLLMBudget(cfg.LLMBudgetPerHour, config.RateLimiterCleanupInterval, m)
				defer llmBudget.Stop()
			}
			fallback = ratelimit.NewBudgetedExtractor(extractor, llmBudget)
			log.WithField("provider", extractor.Provider().String()).Info("LLM fallback extractor enabled")
		}
	} else {
		log.Info("No LLM provider configured, routing on rules only")
	}

	// Router and HTTP handler
	turnRouter := router.New(fallback, builder, log, cfg.FallbackTimeout)
	handler := server.NewHandler(turnRouter, faqIndex, m, log, config.RouteProcessing)

	// Per-partner request limiter
	partnerLimiter := ratelimit.NewPerKeyLimiter(ratelimit.PerKeyLimiterConfig{
		MaxTokens:     cfg.PartnerRateBurst,
		RefillRate:    cfg.PartnerRateRefillPerSec,
		CleanupPeriod: config.RateLimiterCleanupInterval,
	})
	defer partnerLimiter.Stop()

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	server.Setup(engine, server.Options{
		Handler:         handler,
		DB:              db,
		FAQ:             faqIndex,
		Registry:        registry,
		Metrics:         m,
		Log:             log,
		PartnerLimiter:  partnerLimiter,
		MetricsUsername: cfg.MetricsUsername,
		MetricsPassword: cfg.MetricsPassword,
	})

	// HTTP server timeouts sized for the routing pipeline
	// See internal/config/timeouts.go for detailed explanations
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  config.ServerHTTPRead,
		WriteTimeout: config.ServerHTTPWrite,
		IdleTimeout:  config.ServerHTTPIdle,
	}

	var wg sync.WaitGroup

	// Snapshot warmer keeps the catalog cache fresh so route requests
	// rarely pay a cold refresh.
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in snapshot warmer goroutine")
			}
		}()
		warmSnapshots(ctx, snapshots, cfg.SnapshotTTL, log)
	}()

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start server")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Stop background goroutines
	cancel()

	goDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(goDone)
	}()

	select {
	case <-goDone:
		log.Info("All background goroutines stopped")
	case <-time.After(5 * time.Second):
		log.Warn("Timeout waiting for goroutines to stop")
	}

	// Shutdown server gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Close the LLM extractor (if enabled)
	if extractor != nil {
		if err := extractor.Close(); err != nil {
			log.WithError(err).Error("Failed to close LLM extractor")
		}
	}

	// Close database connection
	if err := db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}

	// Flush buffered telemetry
	sentry.Flush(2 * time.Second)
	if err := log.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Log shipping flush incomplete")
	}

	log.Info("Server stopped")
}
