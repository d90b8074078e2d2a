// Package pipeline sequences classification, confidence scoring and field
// extraction over raw document text. The whole pass is a pure in-memory
// computation: no I/O, no retries, no failure mode. A document always yields
// exactly one classification and one (possibly empty) field map.
package pipeline

import (
	"github.com/itune8/autodoc-classifier/internal/classify"
	"github.com/itune8/autodoc-classifier/internal/core/domain"
	"github.com/itune8/autodoc-classifier/internal/fields"
)

// Process runs classify → score → extract on the text. It is deterministic
// and idempotent; callers may re-invoke freely, including concurrently across
// documents.
func Process(text string) domain.ExtractionResult {
	docType := classify.Classify(text)
	return domain.ExtractionResult{
		Type:       docType,
		Confidence: classify.Score(text, docType),
		Fields:     fields.Extract(docType, text),
	}
}
