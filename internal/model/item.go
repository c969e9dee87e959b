package model

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/protonstudio/invoice-builder/internal/money"
)

// LineItem is one billable row of an invoice.
//
// ID is stable for the lifetime of the item and never reused within a
// session. Position is the 1-based display label ("Item 3") and is
// reassigned when other items are removed.
type LineItem struct {
	ID       int64
	Position int

	Description string
	UnitPrice   decimal.Decimal
	Quantity    decimal.Decimal
	Discount    decimal.Decimal // percent, [0,100] by input convention but not clamped

	// Derived from the fields above, refreshed on every write.
	Subtotal    decimal.Decimal
	DiscountAmt decimal.Decimal
	Total       decimal.Decimal
}

// Recalculate refreshes the derived amounts from the raw fields.
func (li *LineItem) Recalculate() {
	line := money.LineTotal(li.UnitPrice, li.Quantity, li.Discount)
	li.Subtotal = line.Subtotal
	li.DiscountAmt = line.Discount
	li.Total = line.Total
}

// Billable reports whether the item participates in totals and rendering.
// Items without a description are stored but excluded.
func (li *LineItem) Billable() bool {
	return strings.TrimSpace(li.Description) != ""
}

// ItemPatch carries a partial item update. Nil fields are left untouched.
type ItemPatch struct {
	Description *string
	UnitPrice   *decimal.Decimal
	Quantity    *decimal.Decimal
	Discount    *decimal.Decimal
}
