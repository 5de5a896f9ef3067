package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wanderbook/wanderbook/internal/service"
)

// CatalogRefreshWorker periodically rewrites the catalog cache so cold
// entries never pile up behind the TTL.
type CatalogRefreshWorker struct {
	catalogService service.CatalogService
	interval       time.Duration
}

func NewCatalogRefreshWorker(catalogService service.CatalogService, interval time.Duration) *CatalogRefreshWorker {
	return &CatalogRefreshWorker{
		catalogService: catalogService,
		interval:       interval,
	}
}

func (w *CatalogRefreshWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Catalog refresh worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Catalog refresh worker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *CatalogRefreshWorker) refresh(ctx context.Context) {
	start := time.Now()

	if err := w.catalogService.RefreshCache(ctx); err != nil {
		logrus.Errorf("Failed to refresh catalog cache: %v", err)
		return
	}

	logrus.Debugf("Catalog cache refreshed in %s", time.Since(start))
}
