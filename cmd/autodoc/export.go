package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/itune8/autodoc-classifier/internal/config"
	"github.com/itune8/autodoc-classifier/internal/export"
	"github.com/itune8/autodoc-classifier/internal/infrastructure/repository/sqldb"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored document inventory as an XLSX workbook",
	RunE:  runExport,
}

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "documents.xlsx", "output file path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ctx := cmd.Context()

	db, err := sqldb.Open(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	repo := sqldb.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure documents schema: %w", err)
	}
	fieldRepo := sqldb.NewFieldRepository(db)
	if err := fieldRepo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure field schema: %w", err)
	}

	out, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	if err := export.NewService(repo, fieldRepo).WriteXLSX(ctx, out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", exportOut)
	return nil
}
