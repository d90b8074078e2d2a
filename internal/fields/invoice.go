package fields

import (
	"regexp"
	"strings"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

var (
	invoiceNumberRe = regexp.MustCompile(`(?i)(invoice\s*number|inv\s*no\.?)\s*[:\-]?\s*([A-Za-z0-9\-]+)`)
	invoiceDateRe   = regexp.MustCompile(`(?i)(invoice\s*date|date)\s*[:\-]?\s*([0-9]{2,4}[/\-][0-9]{1,2}[/\-][0-9]{1,2})`)
	invoiceTotalRe  = regexp.MustCompile(`(?i)(total\s*amount|amount\s*due|total)\s*[:\-]?\s*([$€£]?\s*[0-9.,]+)`)
	invoiceVendorRe = regexp.MustCompile(`(?i)(from|vendor|supplier)\s*[:\-]?\s*([A-Za-z0-9 &.,]+)`)
)

// Invoice pulls invoice_number, invoice_date, total_amount and vendor_name.
// The number requires an explicit "invoice number" or "inv no." label; a bare
// "INVOICE #123" header does not set it.
func Invoice(text string) domain.FieldMap {
	fields := domain.FieldMap{}

	if m := invoiceNumberRe.FindStringSubmatch(text); m != nil {
		fields["invoice_number"] = strings.TrimSpace(m[2])
	}
	if m := invoiceDateRe.FindStringSubmatch(text); m != nil {
		fields["invoice_date"] = strings.TrimSpace(m[2])
	}
	if m := invoiceTotalRe.FindStringSubmatch(text); m != nil {
		fields["total_amount"] = strings.TrimSpace(m[2])
	}
	if m := invoiceVendorRe.FindStringSubmatch(text); m != nil {
		fields["vendor_name"] = strings.TrimSpace(m[2])
	}

	return fields
}
