package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

// DocumentType is the closed set of categories the classifier can assign.
// Adding a type means adding a classification rule and a field extractor;
// existing members never change.
type DocumentType string

const (
	TypeInvoice       DocumentType = "invoice"
	TypePurchaseOrder DocumentType = "purchase_order"
	TypeDriverLicense DocumentType = "driver_license"
	TypePassport      DocumentType = "passport"
	TypeW2            DocumentType = "w2"
	TypePayStub       DocumentType = "pay_stub"
	TypeFloodForm     DocumentType = "flood_form"
	TypeUnknown       DocumentType = "unknown"
)

// DocumentTypes lists every member of the enum, unknown last.
func DocumentTypes() []DocumentType {
	return []DocumentType{
		TypeInvoice,
		TypePurchaseOrder,
		TypeDriverLicense,
		TypePassport,
		TypeW2,
		TypePayStub,
		TypeFloodForm,
		TypeUnknown,
	}
}

// ParseDocumentType maps a stored label back onto the enum. Unrecognized
// labels degrade to unknown rather than erroring.
func ParseDocumentType(s string) (DocumentType, bool) {
	for _, t := range DocumentTypes() {
		if string(t) == s {
			return t, true
		}
	}
	return TypeUnknown, false
}

// FieldMap holds the fields extracted for one document. A key is present only
// when its pattern matched; "not found" is expressed by omission, never by an
// empty or placeholder value.
type FieldMap map[string]string

// Classification is the immutable outcome of classifying one document.
// Confidence is a keyword-overlap ratio in [0,1], not a probability.
type Classification struct {
	Type       DocumentType `json:"document_type"`
	Confidence float64      `json:"confidence"`
}

// ExtractionResult is what one full pipeline pass over raw text yields.
type ExtractionResult struct {
	Type       DocumentType `json:"document_type"`
	Confidence float64      `json:"confidence"`
	Fields     FieldMap     `json:"fields"`
}

type Document struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	MimeType    string         `json:"mime_type"`
	StoragePath string         `json:"storage_path"`
	ContentHash string         `json:"content_hash"`
	SizeBytes   int64          `json:"size_bytes"`
	Type        DocumentType   `json:"document_type,omitempty"`
	Confidence  float64        `json:"confidence,omitempty"`
	Status      DocumentStatus `json:"status"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
