package fields

import (
	"reflect"
	"testing"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

func TestDriverLicenseFields(t *testing.T) {
	text := "Driver's License\nSAMPLE Janet\nDL 12345678\nDOB 01/15/1985"

	got := DriverLicense(text)
	want := domain.FieldMap{
		"name":      "Janet",
		"dl_number": "12345678",
		"DOB":       "01/15/1985",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DriverLicense() = %v, want %v", got, want)
	}
}

func TestDriverLicenseOmitsMissingDOB(t *testing.T) {
	got := DriverLicense("Driver License\nDL A9988")
	if got["dl_number"] != "A9988" {
		t.Errorf("dl_number = %q, want %q", got["dl_number"], "A9988")
	}
	if _, ok := got["DOB"]; ok {
		t.Errorf("DOB present without a date: %v", got)
	}
}

func TestPassportFields(t *testing.T) {
	text := "PASSPORT\nUnited States of America\nPassport No. 123456789\nSurname: ANDERSON"

	got := Passport(text)
	want := domain.FieldMap{
		"passport_number": "123456789",
		"name":            "ANDERSON",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Passport() = %v, want %v", got, want)
	}
}

func TestPassportLastNameLabel(t *testing.T) {
	got := Passport("Last Name: Rivera")
	if got["name"] != "Rivera" {
		t.Fatalf("name = %q, want %q", got["name"], "Rivera")
	}
}

func TestW2Fields(t *testing.T) {
	text := "Form W-2 Wage and Tax Statement\n" +
		"Employee's social security number 123-45-6789\n" +
		"1 Wages, tips, other compensation 50000.00\n" +
		"Employer identification number (EIN) 12-3456789"

	got := W2(text)
	want := domain.FieldMap{
		"ssn":   "123-45-6789",
		"wages": "50000.00",
		"ein":   "12-3456789",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("W2() = %v, want %v", got, want)
	}
}

func TestW2OmitsMalformedSSN(t *testing.T) {
	got := W2("social security number 123456789")
	if _, ok := got["ssn"]; ok {
		t.Fatalf("ssn present for undashed value: %v", got)
	}
}
