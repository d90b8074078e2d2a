package textract

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

func (s *Service) extractPDF(ctx context.Context, data []byte) (string, error) {
	text, err := embeddedPDFText(data)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	if strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text), nil
	}

	// No embedded text layer: scanned PDF. Rasterize each page and OCR it.
	return s.ocrPDFPages(ctx, data)
}

func embeddedPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var parts []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// Pages with broken content streams are skipped, not fatal.
			continue
		}
		parts = append(parts, content)
	}
	return strings.Join(parts, "\n"), nil
}

func (s *Service) ocrPDFPages(ctx context.Context, data []byte) (string, error) {
	if !s.ocr.Enabled() {
		return "", nil
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("open pdf for ocr: %w", err)
	}
	defer doc.Close()

	var parts []string
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.Image(i)
		if err != nil {
			return "", fmt.Errorf("render pdf page %d: %w", i+1, err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("encode pdf page %d: %w", i+1, err)
		}

		text, err := s.ocr.Run(ctx, buf.Bytes())
		if err != nil {
			return "", fmt.Errorf("ocr pdf page %d: %w", i+1, err)
		}
		parts = append(parts, text)
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}
