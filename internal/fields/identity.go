package fields

import (
	"regexp"
	"strings"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

var (
	// Tuned for specimen licenses where the name follows a literal SAMPLE
	// marker. Not a general-purpose name heuristic.
	dlNameRe = regexp.MustCompile(`(?i)sample\s+([A-Z][a-zA-Z]+)`)
	dlNumRe  = regexp.MustCompile(`(?i)DLN?\s*([A-Z0-9]+)`)
	dlDOBRe  = regexp.MustCompile(`(?i)DOB\s*([0-9]{2}/[0-9]{2}/[0-9]{4})`)

	passportNumRe  = regexp.MustCompile(`(?i)passport\s*no\.?\s*([A-Z0-9]+)`)
	passportNameRe = regexp.MustCompile(`(?i)(?:surname|last name)\s*[:]?\s*([A-Z][A-Za-z ]+)`)

	w2SSNRe   = regexp.MustCompile(`(?i)social security number\s*([0-9]{3}-[0-9]{2}-[0-9]{4})`)
	w2WagesRe = regexp.MustCompile(`(?i)1\s*wages, tips, other compensation\s*([0-9,.]+)`)
	w2EINRe   = regexp.MustCompile(`(?i)employer identification number \(ein\)\s*([0-9\-]+)`)
)

// DriverLicense pulls name, dl_number and DOB from license text.
func DriverLicense(text string) domain.FieldMap {
	fields := domain.FieldMap{}

	if m := dlNameRe.FindStringSubmatch(text); m != nil {
		fields["name"] = strings.TrimSpace(m[1])
	}
	if m := dlNumRe.FindStringSubmatch(text); m != nil {
		fields["dl_number"] = strings.TrimSpace(m[1])
	}
	if m := dlDOBRe.FindStringSubmatch(text); m != nil {
		fields["DOB"] = strings.TrimSpace(m[1])
	}

	return fields
}

// Passport pulls passport_number and the surname-labelled name.
func Passport(text string) domain.FieldMap {
	fields := domain.FieldMap{}

	if m := passportNumRe.FindStringSubmatch(text); m != nil {
		fields["passport_number"] = strings.TrimSpace(m[1])
	}
	if m := passportNameRe.FindStringSubmatch(text); m != nil {
		fields["name"] = strings.TrimSpace(m[1])
	}

	return fields
}

// W2 pulls ssn, box-1 wages and the employer EIN from W-2 text.
func W2(text string) domain.FieldMap {
	fields := domain.FieldMap{}

	if m := w2SSNRe.FindStringSubmatch(text); m != nil {
		fields["ssn"] = strings.TrimSpace(m[1])
	}
	if m := w2WagesRe.FindStringSubmatch(text); m != nil {
		fields["wages"] = strings.TrimSpace(m[1])
	}
	if m := w2EINRe.FindStringSubmatch(text); m != nil {
		fields["ein"] = strings.TrimSpace(m[1])
	}

	return fields
}
