package render

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/protonstudio/invoice-builder/internal/model"
)

// PDFRenderer writes the paginated export document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the export PDF for a prepared view. A missing or
// unreadable logo is skipped without failing the document.
func (r *PDFRenderer) Render(view InvoiceView) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	r.header(pdf, view)
	clientBottom := r.billTo(pdf, view)
	tableBottom := r.itemTable(pdf, view, max(clientBottom+15, 115))
	totalsBottom := r.totalsBox(pdf, view, tableBottom+15)
	r.paymentInstructions(pdf, view, totalsBottom)
	r.footer(pdf, view)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, model.NewRenderError("pdf", "writing document", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) header(pdf *gofpdf.Fpdf, view InvoiceView) {
	fill(pdf, colorBand)
	pdf.Rect(0, 0, pageWidth, 55, "F")
	fill(pdf, colorAccent)
	pdf.Rect(0, 0, pageWidth, 3, "F")

	r.logo(pdf, view.Branding.LogoPath)

	pdf.SetFont("Helvetica", "B", 18)
	text(pdf, colorInk)
	pdf.Text(45, 22, view.Branding.CompanyName)

	pdf.SetFont("Helvetica", "", 9)
	text(pdf, colorMuted)
	pdf.Text(45, 28, view.Branding.Tagline)

	pdf.SetFontSize(8)
	pdf.Text(45, 34, view.Branding.AddressLine)
	pdf.Text(45, 39, view.Branding.ContactLine)

	// Invoice metadata box, right side of the band.
	const boxX, boxW = 155.0, 50.0
	fill(pdf, colorAccent)
	pdf.Rect(boxX, 12, boxW, 30, "F")

	text(pdf, colorWhite)
	pdf.SetFont("Helvetica", "B", 14)
	centered(pdf, boxX, 16, boxW, "INVOICE")
	pdf.SetFont("Helvetica", "", 10)
	centered(pdf, boxX, 23, boxW, "#"+view.Number)
	pdf.SetFontSize(7)
	centered(pdf, boxX, 33, boxW, "Due: "+view.DueDateDisplay)
}

// logo embeds the optional company logo. Any problem with the file is
// swallowed: the export must not fail over a decoration.
func (r *PDFRenderer) logo(pdf *gofpdf.Fpdf, path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	opts := gofpdf.ImageOptions{ReadDpi: true}
	pdf.RegisterImageOptions(path, opts)
	if pdf.Err() {
		pdf.ClearError()
		return
	}
	pdf.ImageOptions(path, 20, 12, 20, 20, false, opts, 0, "")
	if pdf.Err() {
		pdf.ClearError()
	}
}

func (r *PDFRenderer) billTo(pdf *gofpdf.Fpdf, view InvoiceView) float64 {
	const sectionY, dateX = 60.0, 155.0

	fill(pdf, colorBand)
	pdf.Rect(marginLeft, sectionY, 70, 4, "F")
	pdf.Rect(dateX, sectionY, 50, 4, "F")

	pdf.SetFont("Helvetica", "B", 9)
	text(pdf, colorAccent)
	pdf.Text(marginLeft+2, sectionY+3, "BILL TO")
	pdf.Text(dateX+2, sectionY+3, "INVOICE DATE")

	pdf.SetFont("Helvetica", "", 9)
	text(pdf, colorBody)
	pdf.Text(dateX+2, 72, view.DateDisplay)

	y := 72.0
	pdf.SetFont("Helvetica", "B", 11)
	text(pdf, colorInk)
	pdf.Text(marginLeft, y, view.ClientName)
	y += 7

	pdf.SetFont("Helvetica", "", 8)
	text(pdf, colorMuted)
	for _, detail := range []struct{ label, value string }{
		{"Email: ", view.ClientEmail},
		{"Company: ", view.ClientCompany},
		{"Phone: ", view.ClientPhone},
	} {
		if detail.value == "" {
			continue
		}
		pdf.Text(marginLeft, y, detail.label+detail.value)
		y += 5
	}
	if len(view.AddressLines) > 0 {
		pdf.Text(marginLeft, y, "Address:")
		y += 5
		for _, line := range view.AddressLines {
			pdf.Text(marginLeft+3, y, line)
			y += 5
		}
	}
	return y
}

func (r *PDFRenderer) itemTable(pdf *gofpdf.Fpdf, view InvoiceView, startY float64) float64 {
	pdf.SetXY(marginLeft, startY)

	pdf.SetFont("Helvetica", "B", 9)
	fill(pdf, colorAccent)
	text(pdf, colorWhite)
	for _, col := range view.Columns {
		pdf.CellFormat(col.WidthMM, 8, col.Header, "", 0, col.Align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	draw(pdf, colorBorder)
	pdf.SetLineWidth(0.2)
	for i, row := range view.Rows {
		if i%2 == 1 {
			fill(pdf, colorBand)
		} else {
			fill(pdf, colorWhite)
		}
		cells := [5]string{row.Description, row.Quantity, row.UnitPrice, row.Discount, row.Total}
		pdf.SetX(marginLeft)
		for j, col := range view.Columns {
			switch j {
			case 3:
				text(pdf, colorNegative)
			case 4:
				text(pdf, colorAccent)
			default:
				text(pdf, colorBody)
			}
			pdf.CellFormat(col.WidthMM, 7, cells[j], "1", 0, col.Align, true, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.GetY()
}

func (r *PDFRenderer) totalsBox(pdf *gofpdf.Fpdf, view InvoiceView, startY float64) float64 {
	const boxX, boxW = 140.0, 65.0

	fill(pdf, colorBand)
	draw(pdf, colorBorder)
	pdf.SetLineWidth(0.5)
	pdf.RoundedRect(boxX-3, startY-3, boxW, 35, 2, "1234", "FD")

	valueX := boxX + boxW - 5

	pdf.SetFont("Helvetica", "", 8)
	text(pdf, colorMuted)
	pdf.Text(boxX, startY+3, "Subtotal")
	text(pdf, colorBody)
	rightAligned(pdf, valueX, startY+3, view.Totals.Subtotal)

	text(pdf, colorMuted)
	pdf.Text(boxX, startY+10, "Discount")
	text(pdf, colorNegative)
	rightAligned(pdf, valueX, startY+10, view.Totals.Discount)

	fill(pdf, colorAccent)
	pdf.RoundedRect(boxX-2, startY+15, boxW-2, 12, 2, "1234", "F")
	pdf.SetFont("Helvetica", "B", 9)
	text(pdf, colorWhite)
	pdf.Text(boxX+1, startY+22, "AMOUNT DUE")
	rightAligned(pdf, valueX-3, startY+22, view.Totals.AmountDue)

	return startY + 35
}

// paymentInstructions lays out the optional instructions block, moving
// to a fresh page when the wrapped text would run into the footer band.
func (r *PDFRenderer) paymentInstructions(pdf *gofpdf.Fpdf, view InvoiceView, totalsBottom float64) {
	if view.PaymentInstructions == "" {
		return
	}
	// Aligned with the totals box on the left, but wider.
	const blockX, blockW = 137.0, 110.0
	_, pageH := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "", 9)
	lines := pdf.SplitText(view.PaymentInstructions, blockW-6)

	startY := totalsBottom + 14
	if startY+float64(len(lines))*lineHeight > pageH-footerMargin {
		pdf.AddPage()
		startY = 40
	}

	fill(pdf, colorBand)
	pdf.Rect(blockX, startY-15, blockW, 8, "F")
	pdf.SetFont("Helvetica", "B", 12)
	text(pdf, colorAccent)
	pdf.Text(blockX+3, startY-9, "PAYMENT INSTRUCTIONS")

	pdf.SetFont("Helvetica", "", 9)
	text(pdf, colorBody)
	y := startY
	for _, line := range lines {
		pdf.Text(blockX+3, y, line)
		y += lineHeight
	}
}

func (r *PDFRenderer) footer(pdf *gofpdf.Fpdf, view InvoiceView) {
	_, pageH := pdf.GetPageSize()
	footerY := pageH - 20

	fill(pdf, colorBand)
	pdf.Rect(0, footerY-3, pageWidth, 15, "F")
	draw(pdf, colorBorder)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, footerY-3, pageWidth-marginRight, footerY-3)

	pdf.SetFont("Helvetica", "", 7)
	text(pdf, colorMuted)
	y := footerY + 1
	for _, line := range view.Branding.FooterLines {
		centered(pdf, 0, y-3, pageWidth, line)
		y += 5
	}
}

func fill(pdf *gofpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
func text(pdf *gofpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
func draw(pdf *gofpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.r, c.g, c.b) }

func centered(pdf *gofpdf.Fpdf, x, y, w float64, s string) {
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 6, s, "", 0, "C", false, 0, "")
}

func rightAligned(pdf *gofpdf.Fpdf, rightX, y float64, s string) {
	pdf.Text(rightX-pdf.GetStringWidth(s), y, s)
}
