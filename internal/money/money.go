// Package money implements the invoice arithmetic. All amounts are
// shopspring decimals; intermediate results are kept exact and only
// rounded at display time.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Line holds the derived amounts of a single line item.
type Line struct {
	Subtotal decimal.Decimal // unit price * quantity
	Discount decimal.Decimal // subtotal * discount%
	Total    decimal.Decimal // subtotal - discount
}

// Totals holds the aggregate amounts of an invoice.
type Totals struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	AmountDue     decimal.Decimal
}

// LineTotal computes the derived amounts for one line item.
//
// The discount percent is not clamped: a percent above 100 yields a
// negative total, which is carried through to the renderers as-is.
func LineTotal(unitPrice, quantity, discountPercent decimal.Decimal) Line {
	subtotal := unitPrice.Mul(quantity)
	discount := subtotal.Mul(discountPercent).Div(hundred)
	return Line{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}
}

// Sum aggregates per-line amounts into invoice totals.
func Sum(lines []Line) Totals {
	t := Totals{Subtotal: Zero, TotalDiscount: Zero, AmountDue: Zero}
	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.Subtotal)
		t.TotalDiscount = t.TotalDiscount.Add(l.Discount)
	}
	t.AmountDue = t.Subtotal.Sub(t.TotalDiscount)
	return t
}

// ParsePrice coerces free-form field input to a unit price.
// Missing or unparseable input becomes 0.
func ParsePrice(s string) decimal.Decimal {
	return parseOr(s, Zero)
}

// ParseQuantity coerces free-form field input to a quantity.
// Missing, unparseable or non-positive input becomes 1.
func ParseQuantity(s string) decimal.Decimal {
	d := parseOr(s, one)
	if !d.IsPositive() {
		return one
	}
	return d
}

// ParseDiscount coerces free-form field input to a discount percent.
// Missing or unparseable input becomes 0.
func ParseDiscount(s string) decimal.Decimal {
	return parseOr(s, Zero)
}

func parseOr(s string, fallback decimal.Decimal) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fallback
	}
	return d
}

// Format renders an amount as fixed two-decimal text prefixed with the
// currency label, e.g. "PKR 180.00".
func Format(label string, d decimal.Decimal) string {
	return label + " " + d.StringFixed(2)
}

// FormatNegated renders an amount negated for display, e.g. "-PKR 20.00".
// Used for the discount row of the totals block.
func FormatNegated(label string, d decimal.Decimal) string {
	return "-" + Format(label, d)
}
