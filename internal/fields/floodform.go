package fields

import (
	"regexp"
	"strings"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

const floodFormTitle = "standard flood hazard determination form"

var (
	floodBorrowerRe = regexp.MustCompile(`(?i)borrower\s*:?\s*([A-Z ,'-]+)`)
	floodLenderRe   = regexp.MustCompile(`(?i)the federal savings bank`)
	floodAddrRe     = regexp.MustCompile(`(?i)Address Determination Address:\s*(.+)`)
	// Case-sensitive on purpose: county names appear as uppercase runs.
	floodCountyRe = regexp.MustCompile(`([A-Z ]+COUNTY)`)
)

// FloodForm pulls borrower, lender, determination_address, county and
// form_type from flood hazard determination forms. Lender and form_type are
// presence checks that set fixed literal values.
func FloodForm(text string) domain.FieldMap {
	fields := domain.FieldMap{}

	if m := floodBorrowerRe.FindStringSubmatch(text); m != nil {
		fields["borrower"] = strings.TrimSpace(m[1])
	}
	if floodLenderRe.MatchString(text) {
		fields["lender"] = "The Federal Savings Bank"
	}
	if m := floodAddrRe.FindStringSubmatch(text); m != nil {
		fields["determination_address"] = strings.TrimSpace(m[1])
	}
	if m := floodCountyRe.FindStringSubmatch(text); m != nil {
		fields["county"] = strings.TrimSpace(m[1])
	}
	if strings.Contains(strings.ToLower(text), floodFormTitle) {
		fields["form_type"] = "Standard Flood Hazard Determination Form"
	}

	return fields
}
