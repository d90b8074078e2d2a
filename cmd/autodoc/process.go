package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/itune8/autodoc-classifier/internal/config"
	"github.com/itune8/autodoc-classifier/internal/core/domain"
	"github.com/itune8/autodoc-classifier/internal/infrastructure/repository/sqldb"
	"github.com/itune8/autodoc-classifier/internal/infrastructure/resilience"
	"github.com/itune8/autodoc-classifier/internal/infrastructure/textract"
	"github.com/itune8/autodoc-classifier/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process <file>...",
	Short: "Classify local files and print the extraction results as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProcess,
}

var processSave bool

func init() {
	processCmd.Flags().BoolVar(&processSave, "save", false, "also record results in the configured database")
	rootCmd.AddCommand(processCmd)
}

type processOutput struct {
	File       string          `json:"file"`
	Type       string          `json:"type"`
	Confidence float64         `json:"confidence"`
	Fields     domain.FieldMap `json:"fields"`
	Error      string          `json:"error,omitempty"`
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ctx := cmd.Context()

	var repo *sqldb.DocumentRepository
	var fieldRepo *sqldb.FieldRepository
	if processSave {
		db, err := sqldb.Open(cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		repo = sqldb.NewDocumentRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure documents schema: %w", err)
		}
		fieldRepo = sqldb.NewFieldRepository(db)
		if err := fieldRepo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure field schema: %w", err)
		}
	}

	ocr := textract.NewOCR(
		cfg.TesseractPath,
		time.Duration(cfg.OCRTimeoutSeconds)*time.Second,
		cfg.OCREnabled,
		resilience.NewExecutor(resilience.DefaultConfig()),
	)
	extractor := textract.NewService(nil, ocr)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	var firstErr error
	for _, path := range args {
		out := processFile(ctx, extractor, path)
		if out.Error == "" && processSave {
			if err := saveResult(ctx, repo, fieldRepo, path, out); err != nil {
				out.Error = err.Error()
			}
		}
		if out.Error != "" && firstErr == nil {
			firstErr = fmt.Errorf("%s: %s", out.File, out.Error)
		}
		if err := encoder.Encode(out); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	}
	return firstErr
}

func processFile(ctx context.Context, extractor *textract.Service, path string) processOutput {
	out := processOutput{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		out.Error = err.Error()
		return out
	}

	text, err := extractor.ExtractBytes(ctx, data, filepath.Ext(path))
	if err != nil {
		out.Error = err.Error()
		return out
	}

	result := pipeline.Process(text)
	out.Type = string(result.Type)
	out.Confidence = result.Confidence
	out.Fields = result.Fields
	return out
}

func saveResult(
	ctx context.Context,
	repo *sqldb.DocumentRepository,
	fieldRepo *sqldb.FieldRepository,
	path string,
	out processOutput,
) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	sum := sha256.Sum256(data)

	now := time.Now().UTC()
	docType, _ := domain.ParseDocumentType(out.Type)
	doc := &domain.Document{
		ID:          uuid.NewString(),
		Filename:    filepath.Base(path),
		MimeType:    "application/octet-stream",
		StoragePath: path,
		ContentHash: hex.EncodeToString(sum[:]),
		SizeBytes:   int64(len(data)),
		Type:        docType,
		Confidence:  out.Confidence,
		Status:      domain.StatusReady,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := repo.Create(ctx, doc); err != nil {
		return fmt.Errorf("record document: %w", err)
	}
	cls := domain.Classification{Type: doc.Type, Confidence: doc.Confidence}
	if err := repo.SaveClassification(ctx, doc.ID, cls, ""); err != nil {
		return fmt.Errorf("record classification: %w", err)
	}
	if doc.Type != domain.TypeUnknown {
		if err := fieldRepo.SaveFields(ctx, doc.ID, doc.Type, out.Fields); err != nil {
			return fmt.Errorf("record fields: %w", err)
		}
	}
	return nil
}
