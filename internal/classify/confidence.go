package classify

import (
	"strings"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

// scoringKeywords is used only for confidence scoring, never for
// classification. The lists are fixed at build time and read-only.
var scoringKeywords = map[domain.DocumentType][]string{
	domain.TypePayStub:       {"pay stub", "gross pay", "net pay", "deductions", "earnings"},
	domain.TypeFloodForm:     {"flood hazard", "fema", "federal emergency"},
	domain.TypeW2:            {"w-2", "form w-2", "wage and tax"},
	domain.TypePassport:      {"passport", "united states of america", "date of birth"},
	domain.TypeDriverLicense: {"driver license", "driver's license", "dl number"},
	domain.TypeInvoice:       {"invoice", "invoice number", "bill to", "total amount"},
	domain.TypePurchaseOrder: {"purchase order", "po number", "quantity", "unit price"},
}

// Score reports how much of docType's keyword list appears in the text, as a
// ratio in [0,1]. It is a static lexical overlap, not a probability.
// TypeUnknown (and any type without a keyword list) scores 0.
func Score(text string, docType domain.DocumentType) float64 {
	keywords := scoringKeywords[docType]
	if len(keywords) == 0 {
		return 0.0
	}

	lower := strings.ToLower(text)
	found := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			found++
		}
	}

	score := float64(found) / float64(len(keywords))
	if score > 1.0 {
		score = 1.0
	}
	return score
}
