// Package invoicebuilder provides a public API for building, totalling
// and rendering invoices.
//
// Example usage:
//
//	b := invoicebuilder.New(invoicebuilder.Options{})
//	id := b.AddItem()
//	desc := "Video Production"
//	b.UpdateItem(id, invoicebuilder.ItemPatch{Description: &desc})
//	result, err := b.Export()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.Data, 0o644)
package invoicebuilder

import (
	"github.com/protonstudio/invoice-builder/internal/builder"
	"github.com/protonstudio/invoice-builder/internal/draft"
	"github.com/protonstudio/invoice-builder/internal/model"
	"github.com/protonstudio/invoice-builder/internal/money"
	"github.com/protonstudio/invoice-builder/internal/render"
)

// Re-export core types for public API
type (
	Invoice      = model.Invoice
	LineItem     = model.LineItem
	ItemStore    = model.ItemStore
	ItemPatch    = model.ItemPatch
	Totals       = money.Totals
	Branding     = render.Branding
	InvoiceView  = render.InvoiceView
	Builder      = builder.Builder
	Options      = builder.Options
	HeaderPatch  = builder.HeaderPatch
	ExportResult = builder.ExportResult
	DraftRecord  = draft.Record
)

// Re-export error types
type (
	ValidationError = model.ValidationError
	RenderError     = model.RenderError
)

// Re-export sentinel errors
var (
	ErrExportInFlight = builder.ErrExportInFlight
	ErrExportFailed   = builder.ErrExportFailed
)

// New creates a builder session with a fresh invoice.
func New(opts Options) *Builder {
	return builder.New(opts)
}

// NewFileBlob creates a file-backed draft store for Options.Blob.
func NewFileBlob(dir string) (draft.Blob, error) {
	return draft.NewFileBlob(dir)
}

// BuildView projects an invoice snapshot into the shared display form
// consumed by both renderers.
func BuildView(inv Invoice, b Branding) InvoiceView {
	return render.BuildView(inv, b)
}
