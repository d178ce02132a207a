package api

import (
	"github.com/saulmedina/pos-transaction-engine/internal/models"
	"github.com/shopspring/decimal"
)

type AddItemRequest struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type DiscountRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

type TenderRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type TotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	Change   decimal.Decimal `json:"change"`
}

type CartResponse struct {
	Items           []models.LineItem `json:"items"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	AmountTendered  decimal.Decimal   `json:"amount_tendered"`
	Totals          TotalsResponse    `json:"totals"`
}

type RemovedItemResponse struct {
	Removed models.LineItem `json:"removed"`
}

type SummaryResponse struct {
	TotalSales         decimal.Decimal `json:"total_sales"`
	TotalRefunds       decimal.Decimal `json:"total_refunds"`
	NetSales           decimal.Decimal `json:"net_sales"`
	RefundCount        int             `json:"refund_count"`
	AverageTransaction decimal.Decimal `json:"average_transaction"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
