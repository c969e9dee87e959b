package builder_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protonstudio/invoice-builder/internal/builder"
	"github.com/protonstudio/invoice-builder/internal/draft"
	"github.com/protonstudio/invoice-builder/internal/model"
	"github.com/protonstudio/invoice-builder/internal/money"
	"github.com/protonstudio/invoice-builder/internal/render"
)

func testOptions(t *testing.T) builder.Options {
	t.Helper()
	blob, err := draft.NewFileBlob(t.TempDir())
	require.NoError(t, err)
	return builder.Options{
		Branding: render.Branding{
			CompanyName:   "Proton Studio",
			CurrencyLabel: "PKR",
			FooterLines:   []string{"Thank you!"},
		},
		Blob:          blob,
		AutosaveDelay: 20 * time.Millisecond,
	}
}

func fillValid(t *testing.T, b *builder.Builder) {
	t.Helper()
	client := "XYZ Corp"
	b.UpdateHeader(builder.HeaderPatch{ClientName: &client})

	id := b.Invoice().Items.All()[0].ID
	desc := "Video Production"
	price := money.ParsePrice("100")
	qty := money.ParseQuantity("2")
	disc := money.ParseDiscount("10")
	b.UpdateItem(id, model.ItemPatch{
		Description: &desc, UnitPrice: &price, Quantity: &qty, Discount: &disc,
	})
}

func TestBuilder_StartsWithOneEmptyItem(t *testing.T) {
	b := builder.New(testOptions(t))

	inv := b.Invoice()
	assert.Equal(t, 1, inv.Items.Len())
	assert.Error(t, b.Validate())
}

func TestBuilder_Totals(t *testing.T) {
	b := builder.New(testOptions(t))
	fillValid(t, b)

	totals := b.Totals()
	assert.Equal(t, "PKR 180.00", money.Format("PKR", totals.AmountDue))
}

func TestBuilder_ExportSucceeds(t *testing.T) {
	b := builder.New(testOptions(t))
	fillValid(t, b)

	result, err := b.Export()
	require.NoError(t, err)
	assert.NotEmpty(t, result.Data)
	assert.Equal(t, "Invoice_"+b.Invoice().Number+"_XYZ Corp.pdf", result.Filename)
}

func TestBuilder_ExportAbortsOnValidation(t *testing.T) {
	b := builder.New(testOptions(t))

	_, err := b.Export()
	require.Error(t, err)

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestBuilder_ExportGuardRestoredAfterFailure(t *testing.T) {
	b := builder.New(testOptions(t))

	// First export fails validation; the guard must be released so a
	// later, valid export can run.
	_, err := b.Export()
	require.Error(t, err)

	fillValid(t, b)
	_, err = b.Export()
	require.NoError(t, err)
}

func TestBuilder_SequentialExports(t *testing.T) {
	b := builder.New(testOptions(t))
	fillValid(t, b)

	for i := 0; i < 3; i++ {
		_, err := b.Export()
		require.NoError(t, err)
	}
}

func TestBuilder_PreviewAbortsOnValidation(t *testing.T) {
	b := builder.New(testOptions(t))

	_, err := b.Preview()
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "clientName", verr.Field, "items exist but client name is missing first")
}

func TestBuilder_PreviewMatchesExportTotals(t *testing.T) {
	b := builder.New(testOptions(t))
	fillValid(t, b)

	html, err := b.Preview()
	require.NoError(t, err)

	totals := b.Totals()
	label := b.Branding().CurrencyLabel
	assert.Contains(t, html, money.Format(label, totals.Subtotal))
	assert.Contains(t, html, money.FormatNegated(label, totals.TotalDiscount))
	assert.Contains(t, html, money.Format(label, totals.AmountDue))
}

func TestBuilder_RemoveItemRenumbers(t *testing.T) {
	b := builder.New(testOptions(t))
	first := b.Invoice().Items.All()[0].ID
	second := b.AddItem()
	third := b.AddItem()

	b.RemoveItem(second)

	items := b.Invoice().Items.All()
	require.Len(t, items, 2)
	assert.Equal(t, first, items[0].ID)
	assert.Equal(t, third, items[1].ID)
	assert.Equal(t, []int{1, 2}, []int{items[0].Position, items[1].Position})
}

func TestBuilder_ClearResetsAndDeletesDraft(t *testing.T) {
	opts := testOptions(t)
	b := builder.New(opts)
	fillValid(t, b)
	b.AddItem()
	require.NoError(t, b.SaveDraft())

	require.NoError(t, b.Clear())

	inv := b.Invoice()
	assert.Equal(t, 1, inv.Items.Len(), "clear resets to exactly one empty item")
	assert.Empty(t, inv.ClientName)

	// The persisted draft is gone too.
	assert.False(t, b.LoadDraft())
}

func TestBuilder_ClearCancelsPendingAutosave(t *testing.T) {
	opts := testOptions(t)
	b := builder.New(opts)
	fillValid(t, b)

	// Clear while the autosave from the edits above is still pending.
	require.NoError(t, b.Clear())

	time.Sleep(3 * opts.AutosaveDelay)
	assert.False(t, b.LoadDraft(), "no draft may reappear after clear")
}

func TestBuilder_DraftRoundTrip(t *testing.T) {
	opts := testOptions(t)
	b := builder.New(opts)
	fillValid(t, b)
	require.NoError(t, b.SaveDraft())

	// A new session over the same store picks the draft up.
	b2 := builder.New(opts)
	require.True(t, b2.LoadDraft())

	inv := b2.Invoice()
	assert.Equal(t, "XYZ Corp", inv.ClientName)
	items := inv.Items.All()
	require.Len(t, items, 1)
	assert.Equal(t, "Video Production", items[0].Description)

	totals := b2.Totals()
	assert.True(t, totals.AmountDue.Equal(b.Totals().AmountDue))
}

func TestBuilder_AutosavePersistsAfterQuietPeriod(t *testing.T) {
	opts := testOptions(t)
	b := builder.New(opts)
	fillValid(t, b)

	// The edits above scheduled an autosave; wait out the quiet period.
	assert.Eventually(t, func() bool {
		return builder.New(opts).LoadDraft()
	}, time.Second, 20*time.Millisecond)
}

func TestBuilder_FixedTime(t *testing.T) {
	opts := testOptions(t)
	opts.Now = func() time.Time { return time.UnixMilli(1756500123456).UTC() }
	b := builder.New(opts)

	inv := b.Invoice()
	assert.Equal(t, "INV-123456", inv.Number)
	assert.Equal(t, inv.Date.AddDate(0, 0, 30), inv.DueDate)
}
