package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protonstudio/invoice-builder/internal/builder"
	"github.com/protonstudio/invoice-builder/internal/draft"
	"github.com/protonstudio/invoice-builder/internal/render"
	"github.com/protonstudio/invoice-builder/internal/server"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	blob, err := draft.NewFileBlob(t.TempDir())
	require.NoError(t, err)

	b := builder.New(builder.Options{
		Branding: render.Branding{
			CompanyName:   "Proton Studio",
			CurrencyLabel: "PKR",
		},
		Blob:          blob,
		AutosaveDelay: time.Hour,
	})
	return server.NewServer(&server.Config{Address: ":0"}, b)
}

func doJSON(t *testing.T, srv *server.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// fillValidSession drives the session to a state that passes validation
// and returns the first item's id.
func fillValidSession(t *testing.T, srv *server.Server) int64 {
	t.Helper()
	w := doJSON(t, srv, http.MethodPut, "/api/v1/invoice/header", map[string]string{
		"clientName": "XYZ Corp",
	})
	require.Equal(t, http.StatusOK, w.Code)

	state := decode[server.StateResponse](t, srv2state(t, srv))
	require.NotEmpty(t, state.Items)
	id := state.Items[0].ID

	w = doJSON(t, srv, http.MethodPut, "/api/v1/invoice/items/"+strconv.FormatInt(id, 10), map[string]string{
		"description": "Video Production",
		"price":       "100",
		"quantity":    "2",
		"discount":    "10",
	})
	require.Equal(t, http.StatusOK, w.Code)
	return id
}

func srv2state(t *testing.T, srv *server.Server) *httptest.ResponseRecorder {
	t.Helper()
	w := doJSON(t, srv, http.MethodGet, "/api/v1/invoice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestGetInvoice_InitialState(t *testing.T) {
	srv := newTestServer(t)

	state := decode[server.StateResponse](t, srv2state(t, srv))
	assert.Contains(t, state.InvoiceNumber, "INV-")
	assert.Len(t, state.Items, 1)
	assert.Equal(t, "PKR 0.00", state.Totals.AmountDue)
}

func TestUpdateHeader(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPut, "/api/v1/invoice/header", map[string]string{
		"clientName":  "XYZ Corp",
		"clientEmail": "billing@xyz.example",
		"dueDate":     "2026-10-15",
	})
	require.Equal(t, http.StatusOK, w.Code)

	state := decode[server.StateResponse](t, w)
	assert.Equal(t, "XYZ Corp", state.ClientName)
	assert.Equal(t, "billing@xyz.example", state.ClientEmail)
	assert.Equal(t, "2026-10-15", state.DueDate)
}

func TestUpdateHeader_BadBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/invoice/header", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddAndRemoveItem(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/invoice/items", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	added := decode[server.AddItemResponse](t, w)
	assert.Len(t, added.State.Items, 2)

	w = doJSON(t, srv, http.MethodDelete, "/api/v1/invoice/items/"+strconv.FormatInt(added.ID, 10), nil)
	require.Equal(t, http.StatusOK, w.Code)

	state := decode[server.StateResponse](t, w)
	assert.Len(t, state.Items, 1)
	assert.Equal(t, 1, state.Items[0].Position)
}

func TestRemoveItem_BadID(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodDelete, "/api/v1/invoice/items/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateItem_CoercesBadNumbers(t *testing.T) {
	srv := newTestServer(t)
	id := fillValidSession(t, srv)

	// Garbage numeric input falls back to the defaults.
	w := doJSON(t, srv, http.MethodPut, "/api/v1/invoice/items/"+strconv.FormatInt(id, 10), map[string]string{
		"price":    "abc",
		"quantity": "",
		"discount": "??",
	})
	require.Equal(t, http.StatusOK, w.Code)

	state := decode[server.StateResponse](t, w)
	item := state.Items[0]
	assert.Equal(t, "0", item.Price)
	assert.Equal(t, "1", item.Quantity)
	assert.Equal(t, "0", item.Discount)
	assert.Equal(t, "PKR 0.00", item.LineTotal)

	// A zero quantity is coerced back to 1, so the line keeps its price.
	w = doJSON(t, srv, http.MethodPut, "/api/v1/invoice/items/"+strconv.FormatInt(id, 10), map[string]string{
		"price":    "100",
		"quantity": "0",
	})
	require.Equal(t, http.StatusOK, w.Code)

	item = decode[server.StateResponse](t, w).Items[0]
	assert.Equal(t, "1", item.Quantity)
	assert.Equal(t, "PKR 100.00", item.LineTotal)
}

func TestTotalsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	fillValidSession(t, srv)

	w := doJSON(t, srv, http.MethodGet, "/api/v1/invoice/totals", nil)
	require.Equal(t, http.StatusOK, w.Code)

	totals := decode[server.TotalsResponse](t, w)
	assert.Equal(t, "PKR 200.00", totals.Subtotal)
	assert.Equal(t, "PKR 20.00", totals.TotalDiscount)
	assert.Equal(t, "PKR 180.00", totals.AmountDue)
}

func TestValidateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/invoice/validate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	res := decode[server.ValidationResponse](t, w)
	assert.False(t, res.Valid)
	assert.Equal(t, "clientName", res.Field)

	fillValidSession(t, srv)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/invoice/validate", nil)
	res = decode[server.ValidationResponse](t, w)
	assert.True(t, res.Valid)
}

func TestPreview_RejectsInvalidSession(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/v1/invoice/preview", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	res := decode[server.ValidationResponse](t, w)
	assert.False(t, res.Valid)
	assert.Equal(t, "clientName", res.Field)
}

func TestPreview_ReturnsHTML(t *testing.T) {
	srv := newTestServer(t)
	fillValidSession(t, srv)

	w := doJSON(t, srv, http.MethodGet, "/api/v1/invoice/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "PKR 180.00")
}

func TestExport_RejectsInvalidSession(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/invoice/export", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestExport_Succeeds(t *testing.T) {
	srv := newTestServer(t)
	fillValidSession(t, srv)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/invoice/export", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "attachment")
	assert.Contains(t, disposition, "XYZ Corp.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestClearEndpoint(t *testing.T) {
	srv := newTestServer(t)
	fillValidSession(t, srv)
	doJSON(t, srv, http.MethodPost, "/api/v1/invoice/items", nil)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/invoice/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)

	state := decode[server.StateResponse](t, w)
	assert.Empty(t, state.ClientName)
	assert.Len(t, state.Items, 1)
}

func TestDraftSaveAndLoad(t *testing.T) {
	srv := newTestServer(t)
	fillValidSession(t, srv)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/draft/save", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Overwrite the session, then restore it from the draft.
	other := "Someone Else"
	w = doJSON(t, srv, http.MethodPut, "/api/v1/invoice/header", map[string]string{"clientName": other})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/draft/load", nil)
	require.Equal(t, http.StatusOK, w.Code)

	loaded := decode[server.LoadDraftResponse](t, w)
	assert.True(t, loaded.Loaded)
	assert.Equal(t, "XYZ Corp", loaded.State.ClientName)
	assert.Equal(t, "PKR 180.00", loaded.State.Totals.AmountDue)
}

func TestDraftLoad_Absent(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/draft/load", nil)
	require.Equal(t, http.StatusOK, w.Code)

	loaded := decode[server.LoadDraftResponse](t, w)
	assert.False(t, loaded.Loaded)
}
