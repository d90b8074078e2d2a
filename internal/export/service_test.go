package export

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

type documentsFake struct {
	docs []domain.Document
	err  error
}

func (f *documentsFake) Create(context.Context, *domain.Document) error { return nil }

func (f *documentsFake) GetByID(context.Context, string) (*domain.Document, error) {
	return nil, domain.ErrDocumentNotFound
}

func (f *documentsFake) List(context.Context, int) ([]domain.Document, error) {
	return f.docs, f.err
}

func (f *documentsFake) UpdateStatus(context.Context, string, domain.DocumentStatus, string) error {
	return nil
}

func (f *documentsFake) SaveClassification(context.Context, string, domain.Classification, string) error {
	return nil
}

type exportFieldsFake struct {
	byID map[string]domain.FieldMap
}

func (f *exportFieldsFake) SaveFields(context.Context, string, domain.DocumentType, domain.FieldMap) error {
	return nil
}

func (f *exportFieldsFake) GetFields(_ context.Context, id string, _ domain.DocumentType) (domain.FieldMap, error) {
	if fields, ok := f.byID[id]; ok {
		return fields, nil
	}
	return domain.FieldMap{}, nil
}

func TestWriteXLSX(t *testing.T) {
	uploaded := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	docs := &documentsFake{docs: []domain.Document{
		{
			ID:         "doc-1",
			Filename:   "invoice.pdf",
			Type:       domain.TypeInvoice,
			Confidence: 0.75,
			Status:     domain.StatusReady,
			CreatedAt:  uploaded,
		},
		{
			ID:        "doc-2",
			Filename:  "scan.png",
			Type:      domain.TypeUnknown,
			Status:    domain.StatusFailed,
			CreatedAt: uploaded,
		},
	}}
	fields := &exportFieldsFake{byID: map[string]domain.FieldMap{
		"doc-1": {
			"invoice_number": "INV-001",
			"total_amount":   "$99.00",
		},
	}}

	var buf bytes.Buffer
	if err := NewService(docs, fields).WriteXLSX(context.Background(), &buf); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read sheet %q: %v", sheetName, err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 documents", len(rows))
	}

	if rows[0][0] != "ID" || rows[0][6] != "Fields" {
		t.Fatalf("header row = %v", rows[0])
	}

	if rows[1][0] != "doc-1" || rows[1][2] != "invoice" || rows[1][4] != "ready" {
		t.Fatalf("data row = %v", rows[1])
	}
	if rows[1][5] != "2024-03-01T12:00:00Z" {
		t.Fatalf("uploaded at = %q", rows[1][5])
	}
	// Flattened fields are sorted by key.
	if rows[1][6] != "invoice_number=INV-001; total_amount=$99.00" {
		t.Fatalf("fields cell = %q", rows[1][6])
	}

	// Documents without extracted fields leave the column blank; GetRows
	// trims trailing empty cells.
	if rows[2][0] != "doc-2" || len(rows[2]) > 6 && rows[2][6] != "" {
		t.Fatalf("unknown row = %v", rows[2])
	}
}

func TestWriteXLSXEmptyInventory(t *testing.T) {
	var buf bytes.Buffer
	svc := NewService(&documentsFake{}, &exportFieldsFake{})
	if err := svc.WriteXLSX(context.Background(), &buf); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want header only", len(rows))
	}
}

func TestWriteXLSXPropagatesListError(t *testing.T) {
	svc := NewService(&documentsFake{err: fmt.Errorf("db down")}, &exportFieldsFake{})
	if err := svc.WriteXLSX(context.Background(), &bytes.Buffer{}); err == nil {
		t.Fatal("WriteXLSX() expected error")
	}
}

func TestFlattenFieldsSortsKeys(t *testing.T) {
	got := flattenFields(domain.FieldMap{"b": "2", "a": "1", "c": "3"})
	if got != "a=1; b=2; c=3" {
		t.Fatalf("flattenFields() = %q", got)
	}
	if flattenFields(nil) != "" {
		t.Fatal("flattenFields(nil) must be empty")
	}
}
