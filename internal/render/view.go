package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/protonstudio/invoice-builder/internal/model"
	"github.com/protonstudio/invoice-builder/internal/money"
)

// Branding carries the fixed identity block both renderers print.
type Branding struct {
	CompanyName   string
	Tagline       string
	AddressLine   string
	ContactLine   string
	LogoPath      string
	CurrencyLabel string
	FooterLines   []string
}

// Column describes one table column for either renderer.
type Column struct {
	Header  string
	WidthMM float64
	Percent float64
	Align   string
}

// ItemRow is one billable table row, fully formatted.
type ItemRow struct {
	Description string
	Quantity    string
	UnitPrice   string
	Discount    string // per-line discount amount, not the percent
	Total       string
}

// TotalsView is the formatted totals block.
type TotalsView struct {
	Subtotal  string
	Discount  string // negated for display
	AmountDue string
}

// InvoiceView is the display projection of an invoice snapshot. Both
// renderers consume only this view, so every number either of them
// shows comes from the same arithmetic pass in BuildView.
type InvoiceView struct {
	Branding Branding

	Number         string
	DateDisplay    string
	DueDateDisplay string

	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientCompany string
	AddressLines  []string

	PaymentInstructions string

	Columns []Column
	Rows    []ItemRow
	Totals  TotalsView
}

// BuildView projects an invoice snapshot into the shared display form.
// Line amounts are recomputed here rather than read from cached item
// fields, so a render can never show stale derived state.
func BuildView(inv model.Invoice, b Branding) InvoiceView {
	view := InvoiceView{
		Branding:            b,
		Number:              inv.Number,
		DateDisplay:         FormatDate(inv.Date),
		DueDateDisplay:      FormatDate(inv.DueDate),
		ClientName:          inv.ClientName,
		ClientEmail:         inv.ClientEmail,
		ClientPhone:         inv.ClientPhone,
		ClientCompany:       inv.ClientCompany,
		AddressLines:        splitLines(inv.ClientAddress),
		PaymentInstructions: strings.TrimSpace(inv.PaymentInstructions),
		Columns:             columns(),
	}

	var lines []money.Line
	for _, item := range inv.Items.All() {
		if !item.Billable() {
			continue
		}
		line := money.LineTotal(item.UnitPrice, item.Quantity, item.Discount)
		lines = append(lines, line)
		view.Rows = append(view.Rows, ItemRow{
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			UnitPrice:   money.Format(b.CurrencyLabel, item.UnitPrice),
			Discount:    money.Format(b.CurrencyLabel, line.Discount),
			Total:       money.Format(b.CurrencyLabel, line.Total),
		})
	}

	totals := money.Sum(lines)
	view.Totals = TotalsView{
		Subtotal:  money.Format(b.CurrencyLabel, totals.Subtotal),
		Discount:  money.FormatNegated(b.CurrencyLabel, totals.TotalDiscount),
		AmountDue: money.Format(b.CurrencyLabel, totals.AmountDue),
	}
	return view
}

func columns() []Column {
	var total float64
	for _, w := range tableWidths {
		total += w
	}
	cols := make([]Column, len(tableHeaders))
	for i := range tableHeaders {
		cols[i] = Column{
			Header:  tableHeaders[i],
			WidthMM: tableWidths[i],
			Percent: tableWidths[i] / total * 100,
			Align:   tableAligns[i],
		}
	}
	return cols
}

// FormatDate renders a calendar date in the long display form used on
// both outputs.
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// Filename returns the deterministic download name for an export,
// falling back to a fixed placeholder when the client name is empty.
func Filename(view InvoiceView) string {
	client := strings.TrimSpace(view.ClientName)
	if client == "" {
		client = "Client"
	}
	return fmt.Sprintf("Invoice_%s_%s.pdf", view.Number, client)
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
