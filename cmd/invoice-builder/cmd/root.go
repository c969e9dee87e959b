package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/protonstudio/invoice-builder/internal/builder"
	"github.com/protonstudio/invoice-builder/internal/config"
	"github.com/protonstudio/invoice-builder/internal/draft"
)

var (
	version = "1.0.0"

	// Global flags
	currencyLabel string
	logoPath      string
	draftDir      string
)

var rootCmd = &cobra.Command{
	Use:   "invoice-builder",
	Short: "Build, preview and export client invoices",
	Long: `Invoice Builder computes invoice totals and renders them as a
downloadable PDF or an HTML preview.

Drafts are saved as JSON records (header fields plus line items) and can
be exported or previewed from the command line; the serve command hosts
the same operations over HTTP.

Examples:
  # Export the saved draft to a PDF
  invoice-builder export

  # Export a specific draft file
  invoice-builder export draft.json -o invoice.pdf

  # Render the HTML preview
  invoice-builder preview draft.json

  # Inspect a generated PDF
  invoice-builder info invoice.pdf

  # Start the HTTP API
  invoice-builder serve --address :8080`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&currencyLabel, "currency", "", "Currency label prefix (default from config)")
	rootCmd.PersistentFlags().StringVar(&logoPath, "logo", "", "Path to the company logo image")
	rootCmd.PersistentFlags().StringVar(&draftDir, "draft-dir", "", "Directory holding the saved draft")
}

// loadConfig reads the environment configuration and applies flag
// overrides.
func loadConfig() *config.Config {
	cfg := config.Load()
	if currencyLabel != "" {
		cfg.Branding.CurrencyLabel = currencyLabel
	}
	if logoPath != "" {
		cfg.Branding.LogoPath = logoPath
	}
	if draftDir != "" {
		cfg.Draft.Dir = draftDir
	}
	return cfg
}

// newBuilder creates a builder session from config, with the draft
// store attached.
func newBuilder(cfg *config.Config) (*builder.Builder, error) {
	blob, err := draft.NewFileBlob(cfg.Draft.Dir)
	if err != nil {
		return nil, err
	}
	return builder.New(builder.Options{
		Branding:      cfg.RenderBranding(),
		Blob:          blob,
		AutosaveDelay: cfg.Draft.AutosaveDelay,
		Now:           time.Now,
	}), nil
}
