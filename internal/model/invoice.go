package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/protonstudio/invoice-builder/internal/money"
)

// Invoice is the full builder state: header fields plus the item store.
// Totals are never stored; they are recomputed from the items on every
// read so no cached amount can diverge.
type Invoice struct {
	Number  string
	Date    time.Time
	DueDate time.Time

	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientCompany string
	ClientAddress string // may be multi-line

	PaymentInstructions string // may be multi-line

	Items *ItemStore
}

// New creates an invoice with the builder defaults: a number derived
// from the current time, invoice date today, due date 30 days out and a
// single empty line item.
func New(now time.Time) *Invoice {
	inv := &Invoice{
		Number:  GenerateNumber(now),
		Date:    now,
		DueDate: now.AddDate(0, 0, 30),
		Items:   NewItemStore(),
	}
	inv.Items.Add()
	return inv
}

// GenerateNumber derives the default invoice number from a timestamp:
// "INV-" plus the trailing six digits of unix milliseconds.
func GenerateNumber(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return "INV-" + millis
}

// Validate checks the submit requirements in the fixed user-facing
// priority order: invoice number, invoice date, due date, client name,
// then item presence. It returns the first failure as a
// *ValidationError, or nil when the invoice is submittable.
func (inv *Invoice) Validate() error {
	if strings.TrimSpace(inv.Number) == "" {
		return NewValidationError("invoiceNumber", "please fill in the Invoice Number field")
	}
	if inv.Date.IsZero() {
		return NewValidationError("invoiceDate", "please fill in the Invoice Date field")
	}
	if inv.DueDate.IsZero() {
		return NewValidationError("dueDate", "please fill in the Due Date field")
	}
	if strings.TrimSpace(inv.ClientName) == "" {
		return NewValidationError("clientName", "please fill in the Client Name field")
	}
	if !inv.Items.HasBillable() {
		return NewValidationError("items", "please add at least one service item with a description")
	}
	return nil
}

// ComputeTotals aggregates the amounts of all billable items.
func (inv *Invoice) ComputeTotals() money.Totals {
	var lines []money.Line
	for _, item := range inv.Items.All() {
		if item.Billable() {
			lines = append(lines, money.LineTotal(item.UnitPrice, item.Quantity, item.Discount))
		}
	}
	return money.Sum(lines)
}

// Snapshot returns a deep copy for rendering, so a long-running export
// is unaffected by edits made while it is in flight.
func (inv *Invoice) Snapshot() Invoice {
	cp := *inv
	cp.Items = inv.Items.Clone()
	return cp
}
