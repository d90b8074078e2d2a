// Package export renders the document inventory as an XLSX workbook.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
	"github.com/itune8/autodoc-classifier/internal/core/ports"
)

const sheetName = "Documents"

type Service struct {
	documents ports.DocumentRepository
	fields    ports.FieldRepository
}

func NewService(documents ports.DocumentRepository, fields ports.FieldRepository) *Service {
	return &Service{documents: documents, fields: fields}
}

// WriteXLSX streams a workbook with one row per document. Extracted fields
// are flattened into a single "key=value; key=value" column so every type
// fits one sheet.
func (s *Service) WriteXLSX(ctx context.Context, w io.Writer) error {
	start := time.Now()

	docs, err := s.documents.List(ctx, 0)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Filename", "Type", "Confidence", "Status", "Uploaded At", "Fields"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("set header: %w", err)
		}
	}

	for rowIdx, doc := range docs {
		fields, err := s.fields.GetFields(ctx, doc.ID, doc.Type)
		if err != nil {
			return fmt.Errorf("fields for %s: %w", doc.ID, err)
		}

		values := []any{
			doc.ID,
			doc.Filename,
			string(doc.Type),
			doc.Confidence,
			string(doc.Status),
			doc.CreatedAt.Format(time.RFC3339),
			flattenFields(fields),
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("set cell: %w", err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 38); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "F", 22); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "G", "G", 60); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	slog.Info("export_complete",
		"documents", len(docs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func flattenFields(fields domain.FieldMap) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for i, k := range keys {
		if i > 0 {
			out += "; "
		}
		out += k + "=" + fields[k]
	}
	return out
}
