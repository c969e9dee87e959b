package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var previewOutput string

var previewCmd = &cobra.Command{
	Use:   "preview [draft-file]",
	Short: "Render the on-screen invoice preview as HTML",
	Long: `Render the HTML preview of an invoice draft. The preview shows the
same sections and the same computed numbers as the PDF export.

Examples:
  invoice-builder preview draft.json
  invoice-builder preview draft.json -o preview.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "", "Output file (default: stdout)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	b, err := loadSession(args)
	if err != nil {
		return err
	}

	html, err := b.Preview()
	if err != nil {
		return err
	}

	if previewOutput == "" {
		fmt.Println(html)
		return nil
	}
	if err := os.WriteFile(previewOutput, []byte(html), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", previewOutput, err)
	}
	fmt.Printf("Wrote preview to %s\n", previewOutput)
	return nil
}
