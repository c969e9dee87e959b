package render

import (
	"html/template"
	"strings"

	"github.com/protonstudio/invoice-builder/internal/model"
)

// HTMLRenderer produces the on-screen preview: the same sections, row
// filter and formatted numbers as the PDF, laid out for a scrolling
// display instead of pages.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer creates a preview renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tmpl: previewTemplate}
}

// Render produces the preview markup for a prepared view.
func (r *HTMLRenderer) Render(view InvoiceView) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, previewData{
		InvoiceView: view,
		Accent:      colorAccent.hex(),
		Band:        colorBand.hex(),
		Ink:         colorInk.hex(),
		Muted:       colorMuted.hex(),
		Body:        colorBody.hex(),
		Negative:    colorNegative.hex(),
		Border:      colorBorder.hex(),
	}); err != nil {
		return "", model.NewRenderError("preview", "executing template", err)
	}
	return sb.String(), nil
}

type previewData struct {
	InvoiceView
	Accent   string
	Band     string
	Ink      string
	Muted    string
	Body     string
	Negative string
	Border   string
}

var previewTemplate = template.Must(template.New("preview").Funcs(template.FuncMap{
	"alignCSS": func(a string) string {
		switch a {
		case "C":
			return "center"
		case "R":
			return "right"
		default:
			return "left"
		}
	},
}).Parse(`<div class="preview-invoice">
  <div class="preview-header" style="padding:15px 20px;background:{{.Band}};border-top:3px solid {{.Accent}};margin-bottom:25px;">
    <div class="preview-company">
      {{if .Branding.LogoPath}}<img src="{{.Branding.LogoPath}}" alt="{{.Branding.CompanyName}} logo" style="width:50px;height:50px;">{{end}}
      <div class="preview-company-text">
        <h1 style="color:{{.Ink}};font-size:1.3rem;margin-bottom:3px;">{{.Branding.CompanyName}}</h1>
        <p style="color:{{.Muted}};font-size:0.75rem;margin:1px 0;">{{.Branding.Tagline}}</p>
        <p style="color:{{.Muted}};font-size:0.7rem;margin:1px 0;">{{.Branding.AddressLine}}</p>
        <p style="color:{{.Muted}};font-size:0.7rem;margin:1px 0;">{{.Branding.ContactLine}}</p>
      </div>
    </div>
    <div class="preview-invoice-info">
      <div class="preview-invoice-title" style="background:{{.Accent}};color:#fff;padding:8px 15px;font-size:1rem;margin-bottom:8px;">INVOICE #{{.Number}}</div>
      <p style="font-size:0.75rem;margin:2px 0;"><strong>Due:</strong> {{.DueDateDisplay}}</p>
    </div>
  </div>

  <div class="preview-client-info" style="margin-bottom:20px;">
    <div class="preview-section">
      <h3 style="background:{{.Band}};color:{{.Accent}};padding:3px 6px;margin-bottom:10px;font-size:0.8rem;">BILL TO</h3>
      <p style="font-weight:bold;margin:4px 0;">{{.ClientName}}</p>
      {{if .ClientEmail}}<p style="font-size:0.8rem;margin:2px 0;">Email: {{.ClientEmail}}</p>{{end}}
      {{if .ClientCompany}}<p style="font-size:0.8rem;margin:2px 0;">Company: {{.ClientCompany}}</p>{{end}}
      {{if .ClientPhone}}<p style="font-size:0.8rem;margin:2px 0;">Phone: {{.ClientPhone}}</p>{{end}}
      {{if .AddressLines}}<p style="font-size:0.8rem;margin:2px 0;">Address:{{range .AddressLines}}<br>&nbsp;&nbsp;&nbsp;{{.}}{{end}}</p>{{end}}
    </div>
    <div class="preview-section">
      <h3 style="background:{{.Band}};color:{{.Accent}};padding:3px 6px;margin-bottom:10px;font-size:0.8rem;">INVOICE DATE</h3>
      <p style="font-weight:bold;margin:4px 0;">{{.DateDisplay}}</p>
    </div>
  </div>

  <table class="preview-table" style="width:100%;border-collapse:collapse;margin:15px 0;font-size:0.85rem;">
    <thead>
      <tr>
        {{range .Columns}}<th style="background:{{$.Accent}};color:#fff;text-align:{{alignCSS .Align}};width:{{printf "%.1f" .Percent}}%;padding:8px 6px;font-size:0.8rem;">{{.Header}}</th>{{end}}
      </tr>
    </thead>
    <tbody>
      {{range .Rows}}<tr>
        <td style="text-align:left;padding:6px;border:1px solid {{$.Border}};">{{.Description}}</td>
        <td style="text-align:center;padding:6px;border:1px solid {{$.Border}};">{{.Quantity}}</td>
        <td style="text-align:right;padding:6px;border:1px solid {{$.Border}};">{{.UnitPrice}}</td>
        <td style="text-align:right;padding:6px;border:1px solid {{$.Border}};color:{{$.Negative}};">{{.Discount}}</td>
        <td style="text-align:right;padding:6px;border:1px solid {{$.Border}};font-weight:bold;color:{{$.Accent}};">{{.Total}}</td>
      </tr>{{end}}
    </tbody>
  </table>

  <div class="preview-totals">
    <div style="background:{{.Band}};border:1px solid {{.Border}};padding:12px;margin-top:15px;width:260px;margin-left:auto;">
      <div style="display:flex;justify-content:space-between;margin-bottom:6px;font-size:0.8rem;color:{{.Muted}};">
        <span>Subtotal:</span><span style="color:{{.Body}};">{{.Totals.Subtotal}}</span>
      </div>
      <div style="display:flex;justify-content:space-between;margin-bottom:8px;font-size:0.8rem;color:{{.Muted}};">
        <span>Discount:</span><span style="color:{{.Negative}};">{{.Totals.Discount}}</span>
      </div>
      <div style="background:{{.Accent}};color:#fff;padding:8px 10px;">
        <div style="display:flex;justify-content:space-between;font-weight:bold;font-size:0.85rem;">
          <span>AMOUNT DUE:</span><span>{{.Totals.AmountDue}}</span>
        </div>
      </div>
    </div>
  </div>

  {{if .PaymentInstructions}}
  <div class="preview-section" style="margin-top:25px;">
    <h3 style="background:{{.Band}};color:{{.Accent}};padding:3px 6px;margin-bottom:10px;font-size:0.8rem;">PAYMENT INSTRUCTIONS</h3>
    <p style="background:{{.Band}};padding:12px;line-height:1.4;font-size:0.85rem;white-space:pre-line;">{{.PaymentInstructions}}</p>
  </div>
  {{end}}

  <div style="text-align:center;margin-top:25px;padding:12px;background:{{.Band}};border-top:1px solid {{.Border}};">
    {{range .Branding.FooterLines}}<p style="color:{{$.Muted}};font-size:0.75rem;margin:3px 0;">{{.}}</p>
    {{end}}
  </div>
</div>
`))
