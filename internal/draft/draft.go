package draft

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/protonstudio/invoice-builder/internal/model"
)

// Key is the fixed storage key for the builder's single draft slot.
const Key = "protonBillingDraft"

// Record is the persisted draft payload. Item ids are deliberately not
// persisted; they are reassigned when the draft is loaded. Dates are
// not persisted either: a restored draft keeps the fresh session's
// dates, matching how the form behaves.
type Record struct {
	InvoiceNumber       string       `json:"invoiceNumber"`
	ClientName          string       `json:"clientName"`
	ClientEmail         string       `json:"clientEmail"`
	ClientPhone         string       `json:"clientPhone"`
	ClientCompany       string       `json:"clientCompany"`
	ClientAddress       string       `json:"clientAddress"`
	PaymentInstructions string       `json:"paymentInstructions"`
	Items               []ItemRecord `json:"serviceItems"`
}

// ItemRecord is one persisted line item.
type ItemRecord struct {
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    decimal.Decimal `json:"quantity"`
	Discount    decimal.Decimal `json:"discount"`
}

// Adapter serializes invoices to and from a blob store.
type Adapter struct {
	blob Blob
}

// NewAdapter creates a draft adapter over the given blob store.
func NewAdapter(blob Blob) *Adapter {
	return &Adapter{blob: blob}
}

// Save writes the invoice's draft record under the fixed key.
func (a *Adapter) Save(inv model.Invoice) error {
	data, err := json.Marshal(FromInvoice(inv))
	if err != nil {
		return err
	}
	return a.blob.Put(Key, data)
}

// Load reads the stored draft. A missing, unreadable or malformed
// record is reported as absence, never as an error.
func (a *Adapter) Load() (*Record, bool) {
	data, found, err := a.blob.Get(Key)
	if err != nil || !found {
		return nil, false
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false
	}
	return &rec, true
}

// Clear removes the stored draft.
func (a *Adapter) Clear() error {
	return a.blob.Delete(Key)
}

// FromInvoice builds the persisted record for an invoice snapshot.
func FromInvoice(inv model.Invoice) Record {
	rec := Record{
		InvoiceNumber:       inv.Number,
		ClientName:          inv.ClientName,
		ClientEmail:         inv.ClientEmail,
		ClientPhone:         inv.ClientPhone,
		ClientCompany:       inv.ClientCompany,
		ClientAddress:       inv.ClientAddress,
		PaymentInstructions: inv.PaymentInstructions,
	}
	for _, item := range inv.Items.All() {
		rec.Items = append(rec.Items, ItemRecord{
			Description: item.Description,
			Price:       item.UnitPrice,
			Quantity:    item.Quantity,
			Discount:    item.Discount,
		})
	}
	return rec
}

// Apply restores a record into an invoice, replacing header fields and
// items. Items get fresh ids from the invoice's own store.
func Apply(rec *Record, inv *model.Invoice) {
	if rec.InvoiceNumber != "" {
		inv.Number = rec.InvoiceNumber
	}
	inv.ClientName = rec.ClientName
	inv.ClientEmail = rec.ClientEmail
	inv.ClientPhone = rec.ClientPhone
	inv.ClientCompany = rec.ClientCompany
	inv.ClientAddress = rec.ClientAddress
	inv.PaymentInstructions = rec.PaymentInstructions

	if len(rec.Items) == 0 {
		return
	}
	store := model.NewItemStore()
	for _, item := range rec.Items {
		id := store.Add()
		desc := item.Description
		price := item.Price
		qty := item.Quantity
		disc := item.Discount
		store.Update(id, model.ItemPatch{
			Description: &desc,
			UnitPrice:   &price,
			Quantity:    &qty,
			Discount:    &disc,
		})
	}
	inv.Items = store
}
