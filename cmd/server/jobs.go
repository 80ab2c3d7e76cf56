// Package main provides the partner routing server entry point.
package main

import (
	"context"
	"time"

	"github.com/studygate/partner-bot-go/internal/catalog"
	"github.com/studygate/partner-bot-go/internal/config"
	"github.com/studygate/partner-bot-go/internal/data"
	"github.com/studygate/partner-bot-go/internal/logger"
	"github.com/studygate/partner-bot-go/internal/storage"
)

// seedCatalog fills the catalog from the configured seed file, or from the
// built-in data set when the database is empty. Imports upsert by id, so
// re-running against an already seeded database is harmless.
func seedCatalog(ctx context.Context, db *storage.DB, cfg *config.Config, log *logger.Logger) error {
	if cfg.CatalogSeedPath != "" {
		universities, majors, err := db.ImportSeed(ctx, cfg.CatalogSeedPath)
		if err != nil {
			return err
		}
		log.WithField("path", cfg.CatalogSeedPath).
			WithField("universities", universities).
			WithField("majors", majors).
			Info("Catalog seed imported")
		return nil
	}

	count, err := db.CountUniversities(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.WithField("universities", count).Info("Catalog already populated")
		return nil
	}

	if err := db.SaveUniversitiesBatch(ctx, data.Universities()); err != nil {
		return err
	}
	if err := db.SaveMajorsBatch(ctx, data.Majors()); err != nil {
		return err
	}
	log.WithField("universities", len(data.Universities())).
		WithField("majors", len(data.Majors())).
		Info("Catalog seeded with built-in data")
	return nil
}

// warmSnapshots re-reads the catalog snapshot shortly after each TTL expiry
// so route requests rarely block on a cold load.
func warmSnapshots(ctx context.Context, provider *catalog.Provider, ttl time.Duration, log *logger.Logger) {
	interval := ttl + ttl/10
	if interval < time.Minute {
		interval = time.Minute
	}

	// Initial warm load
	if _, err := provider.Get(ctx); err != nil {
		log.WithError(err).Warn("Initial snapshot load failed")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := provider.Get(ctx); err != nil {
				log.WithError(err).Warn("Snapshot warm refresh failed")
			}
		}
	}
}
