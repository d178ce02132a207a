package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/saulmedina/pos-transaction-engine/internal/metrics"
)

// NewRouter maps every engine operation to one request/response pair.
func NewRouter(handler *Handler, m *metrics.EngineMetrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	route := func(name string, h http.HandlerFunc) http.HandlerFunc {
		return instrument(m, name, h)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", route("get_cart", handler.GetCart))
		r.Post("/items", route("add_cart_item", handler.AddCartItem))
		r.Delete("/items/{index}", route("remove_cart_item", handler.RemoveCartItem))
		r.Post("/clear", route("clear_cart", handler.ClearCart))
		r.Put("/discount", route("set_discount", handler.SetDiscount))
		r.Put("/tender", route("set_tender", handler.SetTender))
	})

	r.Post("/checkout", route("checkout", handler.Checkout))

	r.Get("/sales", route("list_sales", handler.ListSales))
	r.Delete("/sales/{id}", route("delete_sale", handler.DeleteSale))

	r.Route("/corrections", func(r chi.Router) {
		r.Get("/", route("list_corrections", handler.ListCorrections))
		r.Post("/", route("create_correction", handler.CreateCorrection))
		r.Post("/{id}/resolve", route("resolve_correction", handler.ResolveCorrection))
	})

	r.Get("/reports/summary", route("report_summary", handler.ReportSummary))
	r.Get("/reports/payment-methods", route("report_payment_methods", handler.ReportPaymentMethods))

	return r
}

// instrument records request count and latency per handler. m may be nil.
func instrument(m *metrics.EngineMetrics, name string, next http.HandlerFunc) http.HandlerFunc {
	if m == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next(ww, r)
		m.Requests.WithLabelValues(name, strconv.Itoa(ww.Status())).Inc()
		m.LatencyMS.WithLabelValues(name).Observe(float64(time.Since(start).Milliseconds()))
	}
}
