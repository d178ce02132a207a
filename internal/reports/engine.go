// Package reports derives read-only aggregations over the sales ledger.
// Every query is a full rescan of the ledger at call time; nothing is cached
// or incrementally maintained.
package reports

import (
	"sort"

	"github.com/saulmedina/pos-transaction-engine/internal/ledger"
	"github.com/saulmedina/pos-transaction-engine/internal/models"
	"github.com/shopspring/decimal"
)

// Engine answers reporting queries against a ledger.
type Engine struct {
	ledger *ledger.Ledger
}

// NewEngine creates a reporting engine over the given ledger.
func NewEngine(l *ledger.Ledger) *Engine {
	return &Engine{ledger: l}
}

// MethodBreakdown is one row of the payment-method aggregation.
type MethodBreakdown struct {
	Method      models.PaymentMethod `json:"method"`
	DisplayName string               `json:"display_name"`
	Count       int                  `json:"count"`
	Total       decimal.Decimal      `json:"total"`
}

// TotalSales sums sale-kind records with a non-negative amount. The filter is
// the kind tag, not the sign: refunds are excluded even if one ever carried a
// positive amount, and a negative committed sale is excluded from this figure.
func (e *Engine) TotalSales() (decimal.Decimal, error) {
	records, err := e.ledger.All()
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, r := range records {
		if r.Kind == models.KindSale && !r.Amount.IsNegative() {
			total = total.Add(r.Amount)
		}
	}
	return total, nil
}

// TotalRefunds is the absolute value of the summed refund-kind amounts.
func (e *Engine) TotalRefunds() (decimal.Decimal, error) {
	records, err := e.ledger.All()
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, r := range records {
		if r.Kind == models.KindRefund {
			total = total.Add(r.Amount)
		}
	}
	return total.Abs(), nil
}

// NetSales is total sales minus total refunds.
func (e *Engine) NetSales() (decimal.Decimal, error) {
	sales, err := e.TotalSales()
	if err != nil {
		return decimal.Zero, err
	}
	refunds, err := e.TotalRefunds()
	if err != nil {
		return decimal.Zero, err
	}
	return sales.Sub(refunds), nil
}

// RefundCount counts refund-kind records.
func (e *Engine) RefundCount() (int, error) {
	records, err := e.ledger.All()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, r := range records {
		if r.Kind == models.KindRefund {
			count++
		}
	}
	return count, nil
}

// AverageTransaction divides total sales by the number of sale-kind records.
// With no sale-kind records there is nothing to average and the result is
// zero, never a division error.
func (e *Engine) AverageTransaction() (decimal.Decimal, error) {
	records, err := e.ledger.All()
	if err != nil {
		return decimal.Zero, err
	}

	saleCount := 0
	for _, r := range records {
		if r.Kind == models.KindSale {
			saleCount++
		}
	}
	if saleCount == 0 {
		return decimal.Zero, nil
	}

	total, err := e.TotalSales()
	if err != nil {
		return decimal.Zero, err
	}
	return total.Div(decimal.NewFromInt(int64(saleCount))), nil
}

// PaymentMethodBreakdown groups all ledger records, sales and refunds
// together, by payment method. Totals are signed sums, so refunds reduce a
// method's total. Rows are sorted descending by total.
func (e *Engine) PaymentMethodBreakdown() ([]MethodBreakdown, error) {
	records, err := e.ledger.All()
	if err != nil {
		return nil, err
	}

	byMethod := make(map[models.PaymentMethod]*MethodBreakdown)
	for _, r := range records {
		row, ok := byMethod[r.Method]
		if !ok {
			row = &MethodBreakdown{
				Method:      r.Method,
				DisplayName: r.Method.DisplayName(),
				Total:       decimal.Zero,
			}
			byMethod[r.Method] = row
		}
		row.Count++
		row.Total = row.Total.Add(r.Amount)
	}

	breakdown := make([]MethodBreakdown, 0, len(byMethod))
	for _, row := range byMethod {
		breakdown = append(breakdown, *row)
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Total.GreaterThan(breakdown[j].Total)
	})
	return breakdown, nil
}
