package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/protonstudio/invoice-builder/internal/builder"
	"github.com/protonstudio/invoice-builder/internal/draft"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [draft-file]",
	Short: "Export an invoice draft as a PDF",
	Long: `Render an invoice draft as the downloadable PDF document.

With a draft file argument, the record is read from that file; without
one, the saved draft from the draft directory is used. The output name
defaults to the deterministic export filename derived from the invoice
number and client name.

Examples:
  invoice-builder export
  invoice-builder export draft.json
  invoice-builder export draft.json -o invoice.pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: derived from invoice number and client)")
}

func runExport(cmd *cobra.Command, args []string) error {
	b, err := loadSession(args)
	if err != nil {
		return err
	}

	result, err := b.Export()
	if err != nil {
		return err
	}

	out := exportOutput
	if out == "" {
		out = result.Filename
	}
	if err := os.WriteFile(out, result.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Printf("Exported %s (%d bytes)\n", out, len(result.Data))
	return nil
}

// loadSession creates a builder and fills it from a draft file argument
// or, absent one, from the saved draft.
func loadSession(args []string) (*builder.Builder, error) {
	cfg := loadConfig()
	b, err := newBuilder(cfg)
	if err != nil {
		return nil, err
	}

	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		var rec draft.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("parsing draft %s: %w", args[0], err)
		}
		b.ApplyDraft(&rec)
		return b, nil
	}

	if !b.LoadDraft() {
		return nil, fmt.Errorf("no saved draft found in %s", cfg.Draft.Dir)
	}
	return b, nil
}
