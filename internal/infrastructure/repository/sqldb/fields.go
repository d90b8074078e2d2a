package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

// Each document type gets its own table, one row per document, with one
// nullable TEXT column per extractable field. A field the extractor did not
// find is stored as NULL and never resurfaces as an empty string.
type fieldTable struct {
	name    string
	columns []string
	keys    []string // field-map keys, parallel to columns
}

var fieldTables = map[domain.DocumentType]fieldTable{
	domain.TypeInvoice: {
		name:    "invoice",
		columns: []string{"invoice_number", "invoice_date", "total_amount", "vendor_name"},
		keys:    []string{"invoice_number", "invoice_date", "total_amount", "vendor_name"},
	},
	domain.TypePurchaseOrder: {
		name:    "purchase_order",
		columns: []string{"po_number", "po_date", "total_amount", "buyer_name"},
		keys:    []string{"po_number", "po_date", "total_amount", "buyer_name"},
	},
	domain.TypeDriverLicense: {
		name:    "driver_license",
		columns: []string{"name", "dl_number", "dob"},
		keys:    []string{"name", "dl_number", "DOB"},
	},
	domain.TypePassport: {
		name:    "passport",
		columns: []string{"passport_number", "name"},
		keys:    []string{"passport_number", "name"},
	},
	domain.TypeW2: {
		name:    "w2",
		columns: []string{"ssn", "wages", "ein"},
		keys:    []string{"ssn", "wages", "ein"},
	},
	domain.TypePayStub: {
		name:    "pay_stub",
		columns: []string{"employer", "employee", "payroll_id", "cycle", "pay_rate", "pay_date", "gross_pay", "net_pay"},
		keys:    []string{"employer", "employee", "payroll_id", "cycle", "pay_rate", "pay_date", "gross_pay", "net_pay"},
	},
	domain.TypeFloodForm: {
		name:    "flood_form",
		columns: []string{"borrower", "lender", "determination_address", "county", "form_type"},
		keys:    []string{"borrower", "lender", "determination_address", "county", "form_type"},
	},
}

type FieldRepository struct {
	db *sql.DB
}

func NewFieldRepository(db *sql.DB) *FieldRepository {
	return &FieldRepository{db: db}
}

func (r *FieldRepository) EnsureSchema(ctx context.Context) error {
	for _, t := range fieldTables {
		var b strings.Builder
		fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", t.name)
		b.WriteString("\tdocument_id TEXT PRIMARY KEY REFERENCES documents(id)")
		for _, col := range t.columns {
			fmt.Fprintf(&b, ",\n\t%s TEXT", col)
		}
		b.WriteString("\n)")

		if _, err := r.db.ExecContext(ctx, b.String()); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}
	return nil
}

// SaveFields upserts one row into the table for docType. Unknown documents
// have no field table and the call is a no-op.
func (r *FieldRepository) SaveFields(ctx context.Context, documentID string, docType domain.DocumentType, fields domain.FieldMap) error {
	t, ok := fieldTables[docType]
	if !ok {
		return nil
	}

	cols := append([]string{"document_id"}, t.columns...)
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	updates := make([]string, len(t.columns))
	for i, col := range t.columns {
		updates[i] = fmt.Sprintf("%s = excluded.%s", col, col)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (document_id) DO UPDATE SET %s",
		t.name,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	args := make([]any, 0, len(cols))
	args = append(args, documentID)
	for _, key := range t.keys {
		args = append(args, nullable(fields, key))
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save %s fields: %w", t.name, err)
	}
	return nil
}

// GetFields returns the stored field map for the document, omitting NULL
// columns. A document without a row, or an unknown type, yields an empty map.
func (r *FieldRepository) GetFields(ctx context.Context, documentID string, docType domain.DocumentType) (domain.FieldMap, error) {
	t, ok := fieldTables[docType]
	if !ok {
		return domain.FieldMap{}, nil
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE document_id = $1",
		strings.Join(t.columns, ", "), t.name,
	)

	values := make([]sql.NullString, len(t.columns))
	dest := make([]any, len(t.columns))
	for i := range values {
		dest[i] = &values[i]
	}

	err := r.db.QueryRowContext(ctx, query, documentID).Scan(dest...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.FieldMap{}, nil
		}
		return nil, fmt.Errorf("get %s fields: %w", t.name, err)
	}

	fields := domain.FieldMap{}
	for i, v := range values {
		if v.Valid {
			fields[t.keys[i]] = v.String
		}
	}
	return fields, nil
}

func nullable(fields domain.FieldMap, key string) any {
	if v, ok := fields[key]; ok {
		return v
	}
	return nil
}
