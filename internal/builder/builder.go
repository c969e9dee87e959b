// Package builder wires the invoice aggregate, the draft store and the
// two renderers into one editing session. All mutation goes through the
// builder, which serializes access and schedules the debounced draft
// autosave after every edit.
package builder

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/protonstudio/invoice-builder/internal/draft"
	"github.com/protonstudio/invoice-builder/internal/model"
	"github.com/protonstudio/invoice-builder/internal/money"
	"github.com/protonstudio/invoice-builder/internal/render"
)

var (
	// ErrExportInFlight is returned when an export is triggered while a
	// previous one is still running.
	ErrExportInFlight = errors.New("an export is already in progress")

	// ErrExportFailed is the generic failure reported to the user for
	// unexpected rendering errors. Details are logged, not surfaced.
	ErrExportFailed = errors.New("error generating the invoice, please check your input and try again")
)

// DefaultAutosaveDelay is the quiet period after the last edit before
// the draft is persisted.
const DefaultAutosaveDelay = 2 * time.Second

// Options configures a Builder.
type Options struct {
	Branding      render.Branding
	Blob          draft.Blob    // nil disables draft persistence
	AutosaveDelay time.Duration // 0 means DefaultAutosaveDelay
	Now           func() time.Time
}

// HeaderPatch carries a partial header update. Nil fields are left
// untouched.
type HeaderPatch struct {
	Number              *string
	Date                *time.Time
	DueDate             *time.Time
	ClientName          *string
	ClientEmail         *string
	ClientPhone         *string
	ClientCompany       *string
	ClientAddress       *string
	PaymentInstructions *string
}

// ExportResult is a finished export: the document bytes and the
// deterministic download filename.
type ExportResult struct {
	Filename string
	Data     []byte
}

// Builder is one editing session over a single invoice.
type Builder struct {
	mu        sync.Mutex
	now       func() time.Time
	branding  render.Branding
	inv       *model.Invoice
	drafts    *draft.Adapter
	autosave  *draft.Autosaver
	pdf       *render.PDFRenderer
	preview   *render.HTMLRenderer
	exporting bool
}

// New creates a builder with a fresh invoice (default header fields and
// one empty line item).
func New(opts Options) *Builder {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.AutosaveDelay == 0 {
		opts.AutosaveDelay = DefaultAutosaveDelay
	}
	b := &Builder{
		now:      opts.Now,
		branding: opts.Branding,
		inv:      model.New(opts.Now()),
		pdf:      render.NewPDFRenderer(),
		preview:  render.NewHTMLRenderer(),
	}
	if opts.Blob != nil {
		b.drafts = draft.NewAdapter(opts.Blob)
		b.autosave = draft.NewAutosaver(opts.AutosaveDelay, func() {
			if err := b.SaveDraft(); err != nil {
				log.Printf("draft autosave failed: %v", err)
			}
		})
	}
	return b
}

// UpdateHeader merges the patch into the invoice header.
func (b *Builder) UpdateHeader(patch HeaderPatch) {
	b.mu.Lock()
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&b.inv.Number, patch.Number)
	apply(&b.inv.ClientName, patch.ClientName)
	apply(&b.inv.ClientEmail, patch.ClientEmail)
	apply(&b.inv.ClientPhone, patch.ClientPhone)
	apply(&b.inv.ClientCompany, patch.ClientCompany)
	apply(&b.inv.ClientAddress, patch.ClientAddress)
	apply(&b.inv.PaymentInstructions, patch.PaymentInstructions)
	if patch.Date != nil {
		b.inv.Date = *patch.Date
	}
	if patch.DueDate != nil {
		b.inv.DueDate = *patch.DueDate
	}
	b.mu.Unlock()
	b.touch()
}

// AddItem appends a new default line item and returns its id.
func (b *Builder) AddItem() int64 {
	b.mu.Lock()
	id := b.inv.Items.Add()
	b.mu.Unlock()
	b.touch()
	return id
}

// RemoveItem removes a line item. Unknown ids are a no-op.
func (b *Builder) RemoveItem(id int64) {
	b.mu.Lock()
	b.inv.Items.Remove(id)
	b.mu.Unlock()
	b.touch()
}

// UpdateItem merges a partial item update. Unknown ids are a no-op.
func (b *Builder) UpdateItem(id int64, patch model.ItemPatch) {
	b.mu.Lock()
	b.inv.Items.Update(id, patch)
	b.mu.Unlock()
	b.touch()
}

// Branding returns the identity block invoices are rendered with.
func (b *Builder) Branding() render.Branding {
	return b.branding
}

// Invoice returns an immutable snapshot of the current state.
func (b *Builder) Invoice() model.Invoice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inv.Snapshot()
}

// Totals recomputes the aggregate totals.
func (b *Builder) Totals() money.Totals {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inv.ComputeTotals()
}

// Validate checks whether the invoice is submittable.
func (b *Builder) Validate() error {
	snap := b.Invoice()
	return snap.Validate()
}

// Preview renders the on-screen preview. Validation failures abort
// before any rendering work starts.
func (b *Builder) Preview() (string, error) {
	snap := b.Invoice()
	if err := snap.Validate(); err != nil {
		return "", err
	}
	return b.preview.Render(render.BuildView(snap, b.branding))
}

// Export renders the downloadable document. Only one export may run at
// a time; the guard is released unconditionally on exit so a failure
// can never leave the trigger permanently disabled. Validation failures
// are returned as-is; anything that goes wrong inside rendering comes
// back as the generic ErrExportFailed.
func (b *Builder) Export() (*ExportResult, error) {
	b.mu.Lock()
	if b.exporting {
		b.mu.Unlock()
		return nil, ErrExportInFlight
	}
	b.exporting = true
	snap := b.inv.Snapshot()
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.exporting = false
		b.mu.Unlock()
	}()

	if err := snap.Validate(); err != nil {
		return nil, err
	}

	view := render.BuildView(snap, b.branding)
	data, err := b.renderPDF(view)
	if err != nil {
		log.Printf("export failed: %v", err)
		return nil, ErrExportFailed
	}
	return &ExportResult{Filename: render.Filename(view), Data: data}, nil
}

func (b *Builder) renderPDF(view render.InvoiceView) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("renderer panic: %v", r)
		}
	}()
	return b.pdf.Render(view)
}

// Clear resets the session to a fresh invoice with one empty item and
// removes the persisted draft. The autosaver is stopped first so a
// pending save cannot recreate the draft after it is deleted.
func (b *Builder) Clear() error {
	if b.autosave != nil {
		b.autosave.Stop()
	}
	b.mu.Lock()
	b.inv = model.New(b.now())
	b.mu.Unlock()
	if b.drafts != nil {
		return b.drafts.Clear()
	}
	return nil
}

// SaveDraft persists the current state immediately.
func (b *Builder) SaveDraft() error {
	if b.drafts == nil {
		return nil
	}
	return b.drafts.Save(b.Invoice())
}

// LoadDraft restores the persisted draft, if any, and reports whether
// one was applied. Item ids are reassigned; a malformed record behaves
// like no draft at all.
func (b *Builder) LoadDraft() bool {
	if b.drafts == nil {
		return false
	}
	rec, found := b.drafts.Load()
	if !found {
		return false
	}
	b.ApplyDraft(rec)
	return true
}

// ApplyDraft restores a draft record into the session, replacing header
// fields and items. Item ids are reassigned.
func (b *Builder) ApplyDraft(rec *draft.Record) {
	b.mu.Lock()
	draft.Apply(rec, b.inv)
	b.mu.Unlock()
}

// Flush persists any pending autosave, for shutdown.
func (b *Builder) Flush() {
	if b.autosave != nil {
		b.autosave.Flush()
	}
}

func (b *Builder) touch() {
	if b.autosave != nil {
		b.autosave.Touch()
	}
}
