package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
	"github.com/itune8/autodoc-classifier/internal/core/ports"
	"github.com/itune8/autodoc-classifier/internal/pipeline"
)

// CacheLookupFunc receives the outcome of each content-hash cache lookup.
type CacheLookupFunc func(hit bool)

type ProcessDocumentUseCase struct {
	repo      ports.DocumentRepository
	fieldRepo ports.FieldRepository
	extractor ports.TextExtractor
	cache     ports.ResultCache

	onCacheLookup CacheLookupFunc

	// Classifications below this ratio are logged, never rejected; unknown
	// with empty fields is a valid terminal result.
	confidenceThreshold float64
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	fieldRepo ports.FieldRepository,
	extractor ports.TextExtractor,
	cache ports.ResultCache,
	confidenceThreshold float64,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:                repo,
		fieldRepo:           fieldRepo,
		extractor:           extractor,
		cache:               cache,
		confidenceThreshold: confidenceThreshold,
	}
}

// WithCacheObserver reports cache lookup outcomes, hit or miss, to fn.
// Lookups that never reach the cache (no cache wired, empty content hash)
// are not reported.
func (uc *ProcessDocumentUseCase) WithCacheObserver(fn CacheLookupFunc) *ProcessDocumentUseCase {
	uc.onCacheLookup = fn
	return uc
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	result, rawText, err := uc.runPipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.persistResult(ctx, documentID, result, rawText); err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}

	return nil
}

func (uc *ProcessDocumentUseCase) runPipeline(ctx context.Context, documentID string) (domain.ExtractionResult, string, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return domain.ExtractionResult{}, "", fmt.Errorf("fetch document by id: %w", err)
	}

	// Empty text is not an error: unreadable scans with no OCR available
	// degrade to an unknown classification with no fields.
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return domain.ExtractionResult{}, "", fmt.Errorf("extract text: %w", err)
	}

	if uc.cache != nil && doc.ContentHash != "" {
		cached := uc.cacheGet(ctx, doc.ContentHash)
		if uc.onCacheLookup != nil {
			uc.onCacheLookup(cached != nil)
		}
		if cached != nil {
			return *cached, text, nil
		}
	}

	result := pipeline.Process(text)

	if result.Type != domain.TypeUnknown && result.Confidence < uc.confidenceThreshold {
		slog.Warn("low_confidence_classification",
			"document_id", doc.ID,
			"document_type", result.Type,
			"confidence", result.Confidence,
			"threshold", uc.confidenceThreshold,
		)
	}

	uc.cachePut(ctx, doc.ContentHash, result)
	return result, text, nil
}

func (uc *ProcessDocumentUseCase) persistResult(ctx context.Context, documentID string, result domain.ExtractionResult, rawText string) error {
	cls := domain.Classification{Type: result.Type, Confidence: result.Confidence}
	if err := uc.repo.SaveClassification(ctx, documentID, cls, rawText); err != nil {
		return fmt.Errorf("save classification: %w", err)
	}

	if result.Type == domain.TypeUnknown {
		return nil
	}
	if err := uc.fieldRepo.SaveFields(ctx, documentID, result.Type, result.Fields); err != nil {
		return fmt.Errorf("save extracted fields: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) cacheGet(ctx context.Context, contentHash string) *domain.ExtractionResult {
	if uc.cache == nil || contentHash == "" {
		return nil
	}
	result, err := uc.cache.Get(ctx, contentHash)
	if err != nil {
		slog.Warn("result_cache_read_failed", "content_hash", contentHash, "error", err)
		return nil
	}
	return result
}

func (uc *ProcessDocumentUseCase) cachePut(ctx context.Context, contentHash string, result domain.ExtractionResult) {
	if uc.cache == nil || contentHash == "" {
		return
	}
	if err := uc.cache.Put(ctx, contentHash, result); err != nil {
		slog.Warn("result_cache_write_failed", "content_hash", contentHash, "error", err)
	}
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, cause error) error {
	return uc.repo.UpdateStatus(ctx, documentID, domain.StatusFailed, cause.Error())
}
