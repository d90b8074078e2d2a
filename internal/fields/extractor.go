// Package fields extracts type-specific structured fields from raw document
// text. Each extractor applies an ordered set of label-anchored patterns and
// writes a key only when its pattern matches: an absent key means "not
// found". Extractors never fail and share no state.
package fields

import "github.com/itune8/autodoc-classifier/internal/core/domain"

// Extractor produces a field map for one document type.
type Extractor func(text string) domain.FieldMap

// Extract dispatches to the extractor for docType. The switch covers the
// whole enum explicitly; unknown and unmapped types yield an empty map,
// never an error.
func Extract(docType domain.DocumentType, text string) domain.FieldMap {
	switch docType {
	case domain.TypeInvoice:
		return Invoice(text)
	case domain.TypePurchaseOrder:
		return PurchaseOrder(text)
	case domain.TypeDriverLicense:
		return DriverLicense(text)
	case domain.TypePassport:
		return Passport(text)
	case domain.TypeW2:
		return W2(text)
	case domain.TypePayStub:
		return PayStub(text)
	case domain.TypeFloodForm:
		return FloodForm(text)
	case domain.TypeUnknown:
		return domain.FieldMap{}
	default:
		return domain.FieldMap{}
	}
}
