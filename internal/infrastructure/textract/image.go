package textract

import (
	"context"
	"strings"
)

func (s *Service) extractImage(ctx context.Context, data []byte) (string, error) {
	// Tesseract reads png/jpeg/bmp/tiff natively, so the bytes go straight
	// through. With OCR disabled an image simply yields no text.
	if !s.ocr.Enabled() {
		return "", nil
	}
	text, err := s.ocr.Run(ctx, data)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
