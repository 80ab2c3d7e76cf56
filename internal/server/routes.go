package server

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/studygate/partner-bot-go/internal/faq"
	"github.com/studygate/partner-bot-go/internal/logger"
	"github.com/studygate/partner-bot-go/internal/metrics"
	"github.com/studygate/partner-bot-go/internal/ratelimit"
	"github.com/studygate/partner-bot-go/internal/sentry"
	"github.com/studygate/partner-bot-go/internal/storage"
)

// Options bundles the dependencies for route setup.
type Options struct {
	Handler        *Handler
	DB             *storage.DB
	FAQ            *faq.Index
	Registry       *prometheus.Registry
	Metrics        *metrics.Metrics
	Log            *logger.Logger
	PartnerLimiter *ratelimit.PerKeyLimiter

	MetricsUsername string
	MetricsPassword string
}

// Setup configures all HTTP routes and middleware on the engine.
func Setup(engine *gin.Engine, opts Options) {
	engine.Use(gin.Recovery())
	if sentry.IsEnabled() {
		engine.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	engine.Use(RequestIDMiddleware())
	engine.Use(SecurityHeadersMiddleware())
	engine.Use(LoggingMiddleware(opts.Log))

	// Health check endpoints
	// Liveness Probe - checks if the application is alive (minimal check)
	// This should NEVER check dependencies - only that the process is running
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	engine.GET("/healthz", healthHandler)
	engine.HEAD("/healthz", healthHandler)

	// Readiness Probe - checks if the application is ready to serve traffic
	readyHandler := func(c *gin.Context) {
		if err := opts.DB.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}

		universityCount, _ := opts.DB.CountUniversities(c.Request.Context())
		faqCount := 0
		if opts.FAQ != nil {
			faqCount = opts.FAQ.Size()
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"database": "connected",
			"catalog": gin.H{
				"universities": universityCount,
			},
			"faq": gin.H{
				"documents": faqCount,
			},
		})
	}
	engine.GET("/ready", readyHandler)
	engine.HEAD("/ready", readyHandler)

	// Routing API
	api := engine.Group("/api/v1")
	if opts.PartnerLimiter != nil {
		api.Use(PartnerRateLimitMiddleware(opts.PartnerLimiter, opts.Metrics))
	}
	api.POST("/route", opts.Handler.HandleRoute)

	// Prometheus metrics endpoint with optional Basic Auth
	authEnabled := opts.MetricsPassword != ""
	engine.GET("/metrics",
		MetricsAuthMiddleware(authEnabled, opts.MetricsUsername, opts.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
}
