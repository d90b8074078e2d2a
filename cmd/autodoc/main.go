// Package main provides the autodoc command line tool for classifying local
// files and exporting the stored inventory without running the services.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/itune8/autodoc-classifier/internal/observability/logging"
)

var rootCmd = &cobra.Command{
	Use:   "autodoc",
	Short: "Classify documents and extract their key fields",
	Long:  "autodoc classifies documents (invoices, purchase orders, licenses, passports, W-2s, pay stubs, flood forms) and extracts their key fields, locally or against the service database.",
}

var logLevel string

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		slog.SetDefault(logging.NewTextLogger("cli", logLevel))
	}
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
