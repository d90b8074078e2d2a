// Package bootstrap wires configuration, infrastructure and use cases into a
// runnable application graph shared by the api and worker binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/itune8/autodoc-classifier/internal/config"
	"github.com/itune8/autodoc-classifier/internal/core/ports"
	"github.com/itune8/autodoc-classifier/internal/core/usecase"
	"github.com/itune8/autodoc-classifier/internal/export"
	"github.com/itune8/autodoc-classifier/internal/infrastructure/cache/boltcache"
	"github.com/itune8/autodoc-classifier/internal/infrastructure/queue/nats"
	"github.com/itune8/autodoc-classifier/internal/infrastructure/repository/sqldb"
	"github.com/itune8/autodoc-classifier/internal/infrastructure/resilience"
	"github.com/itune8/autodoc-classifier/internal/infrastructure/storage/localfs"
	"github.com/itune8/autodoc-classifier/internal/infrastructure/textract"
)

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	Repo      ports.DocumentRepository
	FieldRepo ports.FieldRepository
	IngestUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	Exporter  *export.Service

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := sqldb.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	repo := sqldb.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure documents schema: %w", err)
	}
	fieldRepo := sqldb.NewFieldRepository(db)
	if err := fieldRepo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure field schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath, cfg.MaxUploadBytes)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	var cache ports.ResultCache
	var cacheClose func() error
	if cfg.CachePath != "" {
		boltCache, err := boltcache.Open(cfg.CachePath)
		if err != nil {
			// A broken cache file should not take the service down.
			slog.Warn("result_cache_unavailable", "path", cfg.CachePath, "error", err)
		} else {
			cache = boltCache
			cacheClose = boltCache.Close
		}
	}

	ocr := textract.NewOCR(
		cfg.TesseractPath,
		time.Duration(cfg.OCRTimeoutSeconds)*time.Second,
		cfg.OCREnabled,
		resilience.NewExecutor(resilience.DefaultConfig()),
	)
	extractor := textract.NewService(storage, ocr)

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue, cfg.AllowedExtensions)
	processUC := usecase.NewProcessDocumentUseCase(repo, fieldRepo, extractor, cache, cfg.ConfidenceThreshold)
	exporter := export.NewService(repo, fieldRepo)

	return &App{
		Config:    cfg,
		Queue:     queue,
		Repo:      repo,
		FieldRepo: fieldRepo,
		IngestUC:  ingestUC,
		ProcessUC: processUC,
		Exporter:  exporter,

		closeFn: func() {
			queue.Close()
			if cacheClose != nil {
				_ = cacheClose()
			}
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
