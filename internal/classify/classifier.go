// Package classify assigns a document type to raw extracted text using an
// ordered list of substring rules, and scores the assignment by keyword
// overlap. Both operations are pure functions over the input text.
package classify

import (
	"strings"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

// rule pairs a predicate over lower-cased text with the type it selects.
type rule struct {
	docType domain.DocumentType
	match   func(lower string) bool
}

// rules is evaluated top to bottom; the first match wins. The order matters
// because document vocabularies overlap: a pay stub that lists an SSN must
// not be read as a W-2, and flood determination forms mention lenders and
// borrowers without being invoices. Do not reorder.
var rules = []rule{
	{domain.TypePayStub, func(s string) bool {
		return containsAny(s, "pay stub", "gross pay")
	}},
	{domain.TypeFloodForm, func(s string) bool {
		return containsAny(s, "standard flood hazard determination form", "federal emergency management agency")
	}},
	{domain.TypeW2, func(s string) bool {
		return containsAny(s, "w-2", "form w-2", "w2 wage and tax statement")
	}},
	{domain.TypePassport, func(s string) bool {
		return strings.Contains(s, "passport") && strings.Contains(s, "united states of america")
	}},
	{domain.TypeDriverLicense, func(s string) bool {
		return containsAny(s, "driver license", "driver's license", "driver licence", "dl number")
	}},
	{domain.TypeInvoice, func(s string) bool {
		return containsAny(s, "invoice", "invoice number")
	}},
	{domain.TypePurchaseOrder, func(s string) bool {
		return containsAny(s, "purchase order", "po number")
	}},
}

// Classify maps raw text to a document type. Matching is plain substring
// containment on the lower-cased text, with no tokenization or word-boundary
// handling, so "invoiced" trips the invoice rule. Empty or unrecognized text
// yields TypeUnknown; classification never fails.
func Classify(text string) domain.DocumentType {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.match(lower) {
			return r.docType
		}
	}
	return domain.TypeUnknown
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
