package classify

import (
	"testing"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

func TestScorePayStubKeywordOverlap(t *testing.T) {
	text := "Pay Stub for Employee\nGross Pay: $3000\nDeductions: $500"

	// 3 of 5 pay stub keywords: "pay stub", "gross pay", "deductions".
	got := Score(text, domain.TypePayStub)
	if got != 0.6 {
		t.Fatalf("Score = %v, want 0.6", got)
	}
}

func TestScoreUnrelatedTypeIsLow(t *testing.T) {
	got := Score("INVOICE #12345", domain.TypePurchaseOrder)
	if got >= 0.5 {
		t.Fatalf("Score = %v, want < 0.5", got)
	}
	if got != 0.0 {
		t.Fatalf("Score = %v, want 0.0 with no keywords present", got)
	}
}

func TestScoreUnknownIsZero(t *testing.T) {
	if got := Score("invoice purchase order pay stub", domain.TypeUnknown); got != 0.0 {
		t.Fatalf("Score(unknown) = %v, want 0.0", got)
	}
}

func TestScoreFullOverlapIsOne(t *testing.T) {
	text := "Invoice\nInvoice Number: 1\nBill To: Acme\nTotal Amount: $5"
	if got := Score(text, domain.TypeInvoice); got != 1.0 {
		t.Fatalf("Score = %v, want 1.0", got)
	}
}

func TestScoreStaysInRange(t *testing.T) {
	texts := []string{
		"",
		"invoice invoice invoice invoice invoice",
		"pay stub gross pay net pay deductions earnings pay stub",
		"completely unrelated text",
	}
	for _, text := range texts {
		for _, docType := range domain.DocumentTypes() {
			got := Score(text, docType)
			if got < 0.0 || got > 1.0 {
				t.Fatalf("Score(%q, %q) = %v, out of [0,1]", text, docType, got)
			}
		}
	}
}

func TestScoreIgnoresKeywordRepetition(t *testing.T) {
	once := Score("gross pay", domain.TypePayStub)
	many := Score("gross pay gross pay gross pay", domain.TypePayStub)
	if once != many {
		t.Fatalf("repetition changed score: %v vs %v", once, many)
	}
}
