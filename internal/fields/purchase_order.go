package fields

import (
	"regexp"
	"strings"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

var (
	poNumberRe = regexp.MustCompile(`(?i)(po\s*number|purchase\s*order\s*no\.?)\s*[:\-]?\s*([A-Za-z0-9\-]+)`)
	poDateRe   = regexp.MustCompile(`(?i)(po\s*date|date)\s*[:\-]?\s*([0-9]{2,4}[/\-][0-9]{1,2}[/\-][0-9]{1,2})`)
	poTotalRe  = regexp.MustCompile(`(?i)(total\s*amount|amount)\s*[:\-]?\s*([$€£]?\s*[0-9.,]+)`)
	poBuyerRe  = regexp.MustCompile(`(?i)(to|buyer|customer)\s*[:\-]?\s*([A-Za-z0-9 &.,]+)`)
)

// PurchaseOrder pulls po_number, po_date, total_amount and buyer_name. Same
// pattern shapes as Invoice with PO-specific labels.
func PurchaseOrder(text string) domain.FieldMap {
	fields := domain.FieldMap{}

	if m := poNumberRe.FindStringSubmatch(text); m != nil {
		fields["po_number"] = strings.TrimSpace(m[2])
	}
	if m := poDateRe.FindStringSubmatch(text); m != nil {
		fields["po_date"] = strings.TrimSpace(m[2])
	}
	if m := poTotalRe.FindStringSubmatch(text); m != nil {
		fields["total_amount"] = strings.TrimSpace(m[2])
	}
	if m := poBuyerRe.FindStringSubmatch(text); m != nil {
		fields["buyer_name"] = strings.TrimSpace(m[2])
	}

	return fields
}
