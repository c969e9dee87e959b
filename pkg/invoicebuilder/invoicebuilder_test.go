package invoicebuilder_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protonstudio/invoice-builder/pkg/invoicebuilder"
)

func TestPublicAPI_BuildAndExport(t *testing.T) {
	b := invoicebuilder.New(invoicebuilder.Options{
		Branding: invoicebuilder.Branding{
			CompanyName:   "Proton Studio",
			CurrencyLabel: "PKR",
		},
	})

	client := "XYZ Corp"
	b.UpdateHeader(invoicebuilder.HeaderPatch{ClientName: &client})

	id := b.Invoice().Items.All()[0].ID
	desc := "Video Production"
	price := decimal.NewFromInt(100)
	qty := decimal.NewFromInt(2)
	b.UpdateItem(id, invoicebuilder.ItemPatch{
		Description: &desc, UnitPrice: &price, Quantity: &qty,
	})

	totals := b.Totals()
	assert.True(t, totals.AmountDue.Equal(decimal.NewFromInt(200)))

	result, err := b.Export()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(result.Data[:5]), "%PDF-"))
	assert.Equal(t, "Invoice_"+b.Invoice().Number+"_XYZ Corp.pdf", result.Filename)
}

func TestPublicAPI_ValidationErrorType(t *testing.T) {
	b := invoicebuilder.New(invoicebuilder.Options{})

	_, err := b.Export()
	require.Error(t, err)

	var verr *invoicebuilder.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "clientName", verr.Field)
}

func TestPublicAPI_FileBlobDrafts(t *testing.T) {
	blob, err := invoicebuilder.NewFileBlob(t.TempDir())
	require.NoError(t, err)

	b := invoicebuilder.New(invoicebuilder.Options{Blob: blob})
	client := "XYZ Corp"
	b.UpdateHeader(invoicebuilder.HeaderPatch{ClientName: &client})
	require.NoError(t, b.SaveDraft())

	b2 := invoicebuilder.New(invoicebuilder.Options{Blob: blob})
	require.True(t, b2.LoadDraft())
	assert.Equal(t, "XYZ Corp", b2.Invoice().ClientName)
}
