package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/protonstudio/invoice-builder/internal/builder"
	"github.com/protonstudio/invoice-builder/internal/model"
	"github.com/protonstudio/invoice-builder/internal/money"
)

const dateLayout = "2006-01-02"

// HeaderRequest is a partial header update. Absent fields are left
// untouched; dates are plain calendar dates.
type HeaderRequest struct {
	InvoiceNumber       *string `json:"invoiceNumber"`
	InvoiceDate         *string `json:"invoiceDate"`
	DueDate             *string `json:"dueDate"`
	ClientName          *string `json:"clientName"`
	ClientEmail         *string `json:"clientEmail"`
	ClientPhone         *string `json:"clientPhone"`
	ClientCompany       *string `json:"clientCompany"`
	ClientAddress       *string `json:"clientAddress"`
	PaymentInstructions *string `json:"paymentInstructions"`
}

func (r *HeaderRequest) patch() builder.HeaderPatch {
	patch := builder.HeaderPatch{
		Number:              r.InvoiceNumber,
		ClientName:          r.ClientName,
		ClientEmail:         r.ClientEmail,
		ClientPhone:         r.ClientPhone,
		ClientCompany:       r.ClientCompany,
		ClientAddress:       r.ClientAddress,
		PaymentInstructions: r.PaymentInstructions,
	}
	patch.Date = parseDate(r.InvoiceDate)
	patch.DueDate = parseDate(r.DueDate)
	return patch
}

// parseDate turns an optional wire date into a patch value. Unparseable
// input clears the date, which validation then reports as missing.
func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		zero := time.Time{}
		return &zero
	}
	return &t
}

// ItemRequest is a partial line-item update. Numeric fields arrive as
// the raw field text so the coercion rules apply at this boundary: bad
// price becomes 0, bad quantity 1, bad discount 0.
type ItemRequest struct {
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Quantity    *string `json:"quantity"`
	Discount    *string `json:"discount"`
}

func (r *ItemRequest) patch() model.ItemPatch {
	patch := model.ItemPatch{Description: r.Description}
	if r.Price != nil {
		d := money.ParsePrice(*r.Price)
		patch.UnitPrice = &d
	}
	if r.Quantity != nil {
		d := money.ParseQuantity(*r.Quantity)
		patch.Quantity = &d
	}
	if r.Discount != nil {
		d := money.ParseDiscount(*r.Discount)
		patch.Discount = &d
	}
	return patch
}

// ItemState is one line item as reported to the client.
type ItemState struct {
	ID          int64  `json:"id"`
	Position    int    `json:"position"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Quantity    string `json:"quantity"`
	Discount    string `json:"discount"`
	LineTotal   string `json:"lineTotal"`
}

// StateResponse is the full builder state.
type StateResponse struct {
	InvoiceNumber       string         `json:"invoiceNumber"`
	InvoiceDate         string         `json:"invoiceDate"`
	DueDate             string         `json:"dueDate"`
	ClientName          string         `json:"clientName"`
	ClientEmail         string         `json:"clientEmail,omitempty"`
	ClientPhone         string         `json:"clientPhone,omitempty"`
	ClientCompany       string         `json:"clientCompany,omitempty"`
	ClientAddress       string         `json:"clientAddress,omitempty"`
	PaymentInstructions string         `json:"paymentInstructions,omitempty"`
	Items               []ItemState    `json:"items"`
	Totals              TotalsResponse `json:"totals"`
}

// TotalsResponse carries the aggregate totals, formatted for display.
type TotalsResponse struct {
	Subtotal      string `json:"subtotal"`
	TotalDiscount string `json:"totalDiscount"`
	AmountDue     string `json:"amountDue"`
}

// ValidationResponse is the response for the validate endpoint and for
// rejected preview/export attempts.
type ValidationResponse struct {
	Valid   bool   `json:"valid"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

// AddItemResponse reports the new item's id with the refreshed state.
type AddItemResponse struct {
	ID    int64         `json:"id"`
	State StateResponse `json:"state"`
}

// LoadDraftResponse reports whether a draft was applied.
type LoadDraftResponse struct {
	Loaded bool          `json:"loaded"`
	State  StateResponse `json:"state"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) stateResponse() StateResponse {
	inv := s.builder.Invoice()
	label := s.builder.Branding().CurrencyLabel

	resp := StateResponse{
		InvoiceNumber:       inv.Number,
		InvoiceDate:         inv.Date.Format(dateLayout),
		DueDate:             inv.DueDate.Format(dateLayout),
		ClientName:          inv.ClientName,
		ClientEmail:         inv.ClientEmail,
		ClientPhone:         inv.ClientPhone,
		ClientCompany:       inv.ClientCompany,
		ClientAddress:       inv.ClientAddress,
		PaymentInstructions: inv.PaymentInstructions,
		Items:               []ItemState{},
	}
	for _, item := range inv.Items.All() {
		line := money.LineTotal(item.UnitPrice, item.Quantity, item.Discount)
		resp.Items = append(resp.Items, ItemState{
			ID:          item.ID,
			Position:    item.Position,
			Description: item.Description,
			Price:       item.UnitPrice.String(),
			Quantity:    item.Quantity.String(),
			Discount:    item.Discount.String(),
			LineTotal:   money.Format(label, line.Total),
		})
	}
	totals := inv.ComputeTotals()
	resp.Totals = TotalsResponse{
		Subtotal:      money.Format(label, totals.Subtotal),
		TotalDiscount: money.Format(label, totals.TotalDiscount),
		AmountDue:     money.Format(label, totals.AmountDue),
	}
	return resp
}

func totalsResponse(b *builder.Builder) TotalsResponse {
	label := b.Branding().CurrencyLabel
	totals := b.Totals()
	return TotalsResponse{
		Subtotal:      money.Format(label, totals.Subtotal),
		TotalDiscount: money.Format(label, totals.TotalDiscount),
		AmountDue:     money.Format(label, totals.AmountDue),
	}
}

func validationResponse(err error) ValidationResponse {
	if verr, ok := err.(*model.ValidationError); ok {
		return ValidationResponse{Valid: false, Field: verr.Field, Message: verr.Message}
	}
	return ValidationResponse{Valid: false, Message: err.Error()}
}

func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
		return 0, false
	}
	return id, true
}
