package ports

import (
	"context"
	"io"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, limit int) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveClassification(ctx context.Context, id string, cls domain.Classification, rawText string) error
}

// FieldRepository persists extracted fields into type-specific tables.
type FieldRepository interface {
	SaveFields(ctx context.Context, documentID string, docType domain.DocumentType, fields domain.FieldMap) error
	GetFields(ctx context.Context, documentID string, docType domain.DocumentType) (domain.FieldMap, error)
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	SHA256 string
	Size   int64
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) (ObjectInfo, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue hands uploaded document IDs to the processing worker.
type MessageQueue interface {
	PublishDocumentQueued(ctx context.Context, documentID string) error
	SubscribeDocumentQueued(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// ResultCache memoizes pipeline results by content hash. Implementations are
// best-effort; callers treat errors as misses.
type ResultCache interface {
	Get(ctx context.Context, contentHash string) (*domain.ExtractionResult, error)
	Put(ctx context.Context, contentHash string, result domain.ExtractionResult) error
}
