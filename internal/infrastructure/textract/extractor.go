// Package textract turns stored source documents (PDF, image, plain text)
// into raw text for the classification pipeline. PDFs prefer embedded text
// and fall back to rasterizing pages for OCR; a missing OCR binary degrades
// to empty text instead of failing the document.
package textract

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
	"github.com/itune8/autodoc-classifier/internal/core/ports"
)

type Service struct {
	storage ports.ObjectStorage
	ocr     *OCR
}

func NewService(storage ports.ObjectStorage, ocr *OCR) *Service {
	return &Service{storage: storage, ocr: ocr}
}

func (s *Service) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	reader, err := s.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return "", fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read source document: %w", err)
	}

	return s.ExtractBytes(ctx, raw, filepath.Ext(doc.Filename))
}

// ExtractBytes dispatches on the file extension. The CLI uses it directly on
// local files without going through object storage.
func (s *Service) ExtractBytes(ctx context.Context, data []byte, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return s.extractPDF(ctx, data)
	case ".png", ".jpg", ".jpeg", ".bmp", ".tiff":
		return s.extractImage(ctx, data)
	case ".txt":
		return extractPlainText(data)
	default:
		return "", domain.WrapError(domain.ErrUnsupportedFile, "extract text", fmt.Errorf("extension %q", ext))
	}
}

func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", domain.WrapError(domain.ErrInvalidInput, "extract text", fmt.Errorf("not valid utf-8"))
	}
	return strings.TrimSpace(string(data)), nil
}
