package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/saulmedina/pos-transaction-engine/internal/cart"
	"github.com/saulmedina/pos-transaction-engine/internal/corrections"
	"github.com/saulmedina/pos-transaction-engine/internal/errs"
	"github.com/saulmedina/pos-transaction-engine/internal/ledger"
	"github.com/saulmedina/pos-transaction-engine/internal/metrics"
	"github.com/saulmedina/pos-transaction-engine/internal/models"
	"github.com/saulmedina/pos-transaction-engine/internal/pricing"
	"github.com/saulmedina/pos-transaction-engine/internal/reports"
)

// Handler exposes the engine over HTTP. It owns the register's single active
// cart and serializes access to it; the ledger and correction log guard their
// own collections.
type Handler struct {
	mu          sync.Mutex // guards cart
	cart        *cart.Cart
	ledger      *ledger.Ledger
	corrections *corrections.Log
	reports     *reports.Engine
	metrics     *metrics.EngineMetrics // nil-safe: counters skipped if nil
}

// NewHandler wires the engine components behind the HTTP surface.
// m may be nil, in which case no metrics are recorded.
func NewHandler(l *ledger.Ledger, cl *corrections.Log, re *reports.Engine, m *metrics.EngineMetrics) *Handler {
	return &Handler{
		cart:        cart.New(),
		ledger:      l,
		corrections: cl,
		reports:     re,
		metrics:     m,
	}
}

// AddCartItem appends a line item to the active cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.cart.AddItem(req.Name, req.UnitPrice, req.Quantity); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.cartResponse())
}

// RemoveCartItem deletes the line at the path index and echoes the removed
// item.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_index", "index must be an integer")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	removed, err := h.cart.RemoveItem(index)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RemovedItemResponse{Removed: removed})
}

// ClearCart resets the cart to empty.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cart.Clear()
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// SetDiscount updates the cart's discount percentage.
func (h *Handler) SetDiscount(w http.ResponseWriter, r *http.Request) {
	var req DiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.cart.SetDiscountPercent(req.Percent); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// SetTender updates the amount received from the customer.
func (h *Handler) SetTender(w http.ResponseWriter, r *http.Request) {
	var req TenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.cart.SetAmountTendered(req.Amount); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// GetCart returns the cart contents plus live totals for display.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	writeJSON(w, http.StatusOK, h.cartResponse())
}

// Checkout is the single commit entry point: it turns the active cart into a
// ledger record and resets the cart.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payment_method", err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	sale, err := h.ledger.Commit(r.Context(), h.cart, method)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.Checkouts.WithLabelValues(string(method)).Inc()
	}
	slog.InfoContext(r.Context(), "sale committed",
		"sale_id", sale.ID, "method", string(method), "amount", sale.Amount.String())

	writeJSON(w, http.StatusCreated, sale)
}

// ListSales returns the ledger, most-recent-first.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.ledger.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ledger_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

// DeleteSale removes a ledger record by id. There is no edit route: the
// engine defines no update-in-place over committed records.
func (h *Handler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be an integer")
		return
	}

	if err := h.ledger.Remove(id); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCorrections returns the correction log, most-recent-first.
func (h *Handler) ListCorrections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.corrections.All())
}

// CreateCorrection saves a correction draft as a pending entry.
func (h *Handler) CreateCorrection(w http.ResponseWriter, r *http.Request) {
	draft := h.corrections.Open()
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	correction, err := h.corrections.Save(draft)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, correction)
}

// ResolveCorrection marks a correction resolved; resolving twice is a no-op.
func (h *Handler) ResolveCorrection(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be an integer")
		return
	}

	correction, err := h.corrections.Resolve(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, correction)
}

// ReportSummary returns the derived ledger totals.
func (h *Handler) ReportSummary(w http.ResponseWriter, r *http.Request) {
	totalSales, err := h.reports.TotalSales()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "report_error", err.Error())
		return
	}
	totalRefunds, err := h.reports.TotalRefunds()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "report_error", err.Error())
		return
	}
	netSales, err := h.reports.NetSales()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "report_error", err.Error())
		return
	}
	refundCount, err := h.reports.RefundCount()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "report_error", err.Error())
		return
	}
	average, err := h.reports.AverageTransaction()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "report_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SummaryResponse{
		TotalSales:         totalSales,
		TotalRefunds:       totalRefunds,
		NetSales:           netSales,
		RefundCount:        refundCount,
		AverageTransaction: average,
	})
}

// ReportPaymentMethods returns the per-method breakdown, sorted descending by
// signed total.
func (h *Handler) ReportPaymentMethods(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.reports.PaymentMethodBreakdown()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "report_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

// cartResponse snapshots the cart and its live totals. Callers hold h.mu.
func (h *Handler) cartResponse() CartResponse {
	return CartResponse{
		Items:           h.cart.Items(),
		DiscountPercent: h.cart.DiscountPercent(),
		AmountTendered:  h.cart.AmountTendered(),
		Totals: TotalsResponse{
			Subtotal: pricing.Subtotal(h.cart),
			Tax:      pricing.Tax(h.cart),
			Discount: pricing.DiscountAmount(h.cart),
			Total:    pricing.Total(h.cart),
			Change:   pricing.Change(h.cart),
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}

// writeEngineError maps the engine's error taxonomy onto HTTP status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	var (
		validationErr *errs.ValidationError
		indexErr      *errs.IndexError
		notFoundErr   *errs.NotFoundError
	)
	switch {
	case errors.Is(err, errs.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.As(err, &indexErr):
		writeError(w, http.StatusBadRequest, "index_out_of_range", err.Error())
	case errors.As(err, &notFoundErr):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
