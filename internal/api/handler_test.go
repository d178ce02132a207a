package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saulmedina/pos-transaction-engine/internal/corrections"
	"github.com/saulmedina/pos-transaction-engine/internal/ledger"
	"github.com/saulmedina/pos-transaction-engine/internal/models"
	"github.com/saulmedina/pos-transaction-engine/internal/reports"
	"github.com/saulmedina/pos-transaction-engine/internal/storage/memory"
	"github.com/shopspring/decimal"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	l, err := ledger.NewLedger(memory.NewMemorySaleStore(), nil)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	handler := NewHandler(l, corrections.NewLog(), reports.NewEngine(l), nil)
	return NewRouter(handler, nil)
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestCheckoutFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/cart/items", AddItemRequest{
		Name: "Gift card", UnitPrice: decimal.RequireFromString("1000"), Quantity: 1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add item: expected 201, got %d (%s)", rec.Code, rec.Body)
	}

	rec = do(t, router, http.MethodPut, "/cart/discount", DiscountRequest{
		Percent: decimal.RequireFromString("10"),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("set discount: expected 200, got %d (%s)", rec.Code, rec.Body)
	}

	rec = do(t, router, http.MethodPut, "/cart/tender", TenderRequest{
		Amount: decimal.RequireFromString("1000"),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("set tender: expected 200, got %d (%s)", rec.Code, rec.Body)
	}

	cartResp := decode[CartResponse](t, do(t, router, http.MethodGet, "/cart", nil))
	if !cartResp.Totals.Total.Equal(decimal.RequireFromString("920")) {
		t.Fatalf("expected total 920, got %s", cartResp.Totals.Total)
	}
	if !cartResp.Totals.Change.Equal(decimal.RequireFromString("80")) {
		t.Fatalf("expected change 80, got %s", cartResp.Totals.Change)
	}

	rec = do(t, router, http.MethodPost, "/checkout", CheckoutRequest{PaymentMethod: "card"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout: expected 201, got %d (%s)", rec.Code, rec.Body)
	}
	sale := decode[models.Sale](t, rec)
	if !sale.Amount.Equal(decimal.RequireFromString("920")) {
		t.Fatalf("expected committed amount 920, got %s", sale.Amount)
	}

	cartResp = decode[CartResponse](t, do(t, router, http.MethodGet, "/cart", nil))
	if len(cartResp.Items) != 0 {
		t.Fatalf("checkout must clear the cart, got %d items", len(cartResp.Items))
	}

	sales := decode[[]models.Sale](t, do(t, router, http.MethodGet, "/sales", nil))
	if len(sales) != 1 || sales[0].ID != sale.ID {
		t.Fatalf("expected the committed sale in the ledger, got %v", sales)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/checkout", CheckoutRequest{PaymentMethod: "cash"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decode[ErrorResponse](t, rec)
	if resp.Error != "empty_cart" {
		t.Fatalf("expected empty_cart code, got %q", resp.Error)
	}
}

func TestCheckoutUnknownPaymentMethod(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/cart/items", AddItemRequest{
		Name: "Mouse", UnitPrice: decimal.RequireFromString("350"), Quantity: 1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add item: expected 201, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/checkout", CheckoutRequest{PaymentMethod: "bitcoin"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown method, got %d", rec.Code)
	}
	resp := decode[ErrorResponse](t, rec)
	if resp.Error != "invalid_payment_method" {
		t.Fatalf("expected invalid_payment_method code, got %q", resp.Error)
	}
}

func TestAddItemValidationError(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/cart/items", AddItemRequest{
		Name: "", UnitPrice: decimal.RequireFromString("10"), Quantity: 1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decode[ErrorResponse](t, rec)
	if resp.Error != "validation_error" {
		t.Fatalf("expected validation_error code, got %q", resp.Error)
	}
}

func TestRemoveCartItemOutOfRange(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodDelete, "/cart/items/0", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decode[ErrorResponse](t, rec)
	if resp.Error != "index_out_of_range" {
		t.Fatalf("expected index_out_of_range code, got %q", resp.Error)
	}
}

func TestDeleteSale(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodDelete, "/sales/42", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing sale, got %d", rec.Code)
	}

	do(t, router, http.MethodPost, "/cart/items", AddItemRequest{
		Name: "Mouse", UnitPrice: decimal.RequireFromString("350"), Quantity: 1,
	})
	sale := decode[models.Sale](t, do(t, router, http.MethodPost, "/checkout", CheckoutRequest{PaymentMethod: "cash"}))

	rec = do(t, router, http.MethodDelete, "/sales/1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d (sale id %d)", rec.Code, sale.ID)
	}

	sales := decode[[]models.Sale](t, do(t, router, http.MethodGet, "/sales", nil))
	if len(sales) != 0 {
		t.Fatalf("expected empty ledger after delete, got %v", sales)
	}
}

func TestCorrectionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/corrections", models.CorrectionDraft{
		ItemName: `Monitor LG 27"`,
		Issue:    "Píxeles muertos detectados",
		Solution: "Se cambió por unidad nueva del mismo modelo",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create correction: expected 201, got %d (%s)", rec.Code, rec.Body)
	}
	created := decode[models.Correction](t, rec)
	if created.Status != models.CorrectionPending {
		t.Fatalf("expected pending, got %q", created.Status)
	}

	rec = do(t, router, http.MethodPost, "/corrections", models.CorrectionDraft{ItemName: "x"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("incomplete draft: expected 400, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/corrections/1/resolve", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve: expected 200, got %d", rec.Code)
	}
	resolved := decode[models.Correction](t, rec)
	if resolved.Status != models.CorrectionResolved {
		t.Fatalf("expected resolved, got %q", resolved.Status)
	}

	rec = do(t, router, http.MethodPost, "/corrections/99/resolve", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("resolve missing: expected 404, got %d", rec.Code)
	}

	list := decode[[]models.Correction](t, do(t, router, http.MethodGet, "/corrections", nil))
	if len(list) != 1 || list[0].Status != models.CorrectionResolved {
		t.Fatalf("unexpected correction list: %v", list)
	}
}

func TestReportEndpoints(t *testing.T) {
	router := newTestRouter(t)

	summary := decode[SummaryResponse](t, do(t, router, http.MethodGet, "/reports/summary", nil))
	if !summary.AverageTransaction.IsZero() {
		t.Fatalf("expected zero average on empty ledger, got %s", summary.AverageTransaction)
	}

	do(t, router, http.MethodPost, "/cart/items", AddItemRequest{
		Name: "Monitor", UnitPrice: decimal.RequireFromString("3200"), Quantity: 1,
	})
	do(t, router, http.MethodPost, "/checkout", CheckoutRequest{PaymentMethod: "cash"})

	summary = decode[SummaryResponse](t, do(t, router, http.MethodGet, "/reports/summary", nil))
	if !summary.TotalSales.Equal(decimal.RequireFromString("3264")) { // 3200 + 2% tax
		t.Fatalf("expected total sales 3264, got %s", summary.TotalSales)
	}
	if summary.RefundCount != 0 {
		t.Fatalf("expected no refunds, got %d", summary.RefundCount)
	}

	breakdown := decode[[]struct {
		Method      string          `json:"method"`
		DisplayName string          `json:"display_name"`
		Count       int             `json:"count"`
		Total       decimal.Decimal `json:"total"`
	}](t, do(t, router, http.MethodGet, "/reports/payment-methods", nil))
	if len(breakdown) != 1 || breakdown[0].Method != "cash" || breakdown[0].Count != 1 {
		t.Fatalf("unexpected breakdown: %v", breakdown)
	}
	if breakdown[0].DisplayName != "Efectivo" {
		t.Fatalf("expected Efectivo, got %q", breakdown[0].DisplayName)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
