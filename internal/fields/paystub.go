package fields

import (
	"regexp"
	"strings"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

var (
	stubEmployerRe  = regexp.MustCompile(`(?i)EMPLOYER NAME/ADDRESS:\s*(.+)`)
	stubEmployeeRe  = regexp.MustCompile(`(?i)EMPLOYEE NAME/ADDRESS:\s*([\w\s,]+)`)
	stubPayrollIDRe = regexp.MustCompile(`(?i)Payroll ID:\s*([0-9A-Za-z-]+)`)
	stubCycleRe     = regexp.MustCompile(`(?i)Cycle:\s*([0-9\-]+\s*-\s*[0-9\-]+)`)
	stubPayRateRe   = regexp.MustCompile(`(?i)Pay Rate:\s*([$0-9,./yr]+)`)
	stubPayDateRe   = regexp.MustCompile(`(?i)Pay Date:\s*([0-9\-]+)`)

	// Stub layouts place the amount on the line below these headers, so the
	// patterns cross a newline, unlike every other single-line capture.
	stubGrossRe = regexp.MustCompile(`(?i)GROSS PAY\s*\n\s*([0-9.,$]+)`)
	stubNetRe   = regexp.MustCompile(`(?i)NET PAY\s*\n\s*([0-9.,$]+)`)
)

// PayStub pulls employer, employee, payroll_id, cycle, pay_rate, pay_date,
// gross_pay and net_pay from pay stub text.
func PayStub(text string) domain.FieldMap {
	fields := domain.FieldMap{}

	if m := stubEmployerRe.FindStringSubmatch(text); m != nil {
		fields["employer"] = strings.TrimSpace(m[1])
	}
	if m := stubEmployeeRe.FindStringSubmatch(text); m != nil {
		fields["employee"] = strings.TrimSpace(m[1])
	}
	if m := stubPayrollIDRe.FindStringSubmatch(text); m != nil {
		fields["payroll_id"] = strings.TrimSpace(m[1])
	}
	if m := stubCycleRe.FindStringSubmatch(text); m != nil {
		fields["cycle"] = strings.TrimSpace(m[1])
	}
	if m := stubPayRateRe.FindStringSubmatch(text); m != nil {
		fields["pay_rate"] = strings.TrimSpace(m[1])
	}
	if m := stubPayDateRe.FindStringSubmatch(text); m != nil {
		fields["pay_date"] = strings.TrimSpace(m[1])
	}
	if m := stubGrossRe.FindStringSubmatch(text); m != nil {
		fields["gross_pay"] = strings.TrimSpace(m[1])
	}
	if m := stubNetRe.FindStringSubmatch(text); m != nil {
		fields["net_pay"] = strings.TrimSpace(m[1])
	}

	return fields
}
