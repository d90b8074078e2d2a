package fields

import (
	"testing"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

func TestExtractDispatchesPerType(t *testing.T) {
	cases := []struct {
		docType domain.DocumentType
		text    string
		wantKey string
	}{
		{domain.TypeInvoice, "Invoice Number: INV-9", "invoice_number"},
		{domain.TypePurchaseOrder, "PO Number: PO-9", "po_number"},
		{domain.TypeDriverLicense, "DOB 02/02/1990", "DOB"},
		{domain.TypePassport, "Passport No. X1", "passport_number"},
		{domain.TypeW2, "social security number 111-22-3333", "ssn"},
		{domain.TypePayStub, "Payroll ID: 7", "payroll_id"},
		{domain.TypeFloodForm, "Borrower: A B", "borrower"},
	}

	for _, tc := range cases {
		t.Run(string(tc.docType), func(t *testing.T) {
			got := Extract(tc.docType, tc.text)
			if _, ok := got[tc.wantKey]; !ok {
				t.Fatalf("Extract(%q) missing key %q: %v", tc.docType, tc.wantKey, got)
			}
		})
	}
}

func TestExtractUnknownYieldsEmptyMap(t *testing.T) {
	got := Extract(domain.TypeUnknown, "Invoice Number: INV-9")
	if got == nil {
		t.Fatal("Extract(unknown) = nil, want empty map")
	}
	if len(got) != 0 {
		t.Fatalf("Extract(unknown) = %v, want empty map", got)
	}
}

// Every enum member must have a dispatch branch: extracting with any type
// against unmatchable text still yields a usable empty map.
func TestExtractCoversWholeEnum(t *testing.T) {
	for _, docType := range domain.DocumentTypes() {
		got := Extract(docType, "")
		if got == nil {
			t.Fatalf("Extract(%q, \"\") = nil, want empty map", docType)
		}
		if len(got) != 0 {
			t.Fatalf("Extract(%q, \"\") = %v, want empty map", docType, got)
		}
	}
}
