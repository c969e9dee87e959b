package cmd

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about exported PDF files",
	Long: `Display information about exported invoice PDFs.

Shows:
  - File size and modification time
  - Page count
  - Whether the file is a well-formed PDF

Examples:
  invoice-builder info invoice.pdf
  invoice-builder info *.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	for _, file := range args {
		printFileInfo(file)
		fmt.Println()
	}
	return nil
}

func printFileInfo(filePath string) {
	fmt.Printf("File: %s\n", filePath)

	info, err := os.Stat(filePath)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}

	fmt.Printf("  Size: %d bytes\n", info.Size())
	fmt.Printf("  Modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))

	pages, err := api.PageCountFile(filePath)
	if err != nil {
		fmt.Printf("  Pages: unknown (%v)\n", err)
	} else {
		fmt.Printf("  Pages: %d\n", pages)
	}

	if err := api.ValidateFile(filePath, nil); err != nil {
		fmt.Printf("  Valid PDF: no (%v)\n", err)
	} else {
		fmt.Printf("  Valid PDF: yes\n")
	}
}
