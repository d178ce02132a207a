package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SaleKind distinguishes a sale leg from a refund leg in the ledger.
type SaleKind string

const (
	KindSale   SaleKind = "sale"
	KindRefund SaleKind = "refund"
)

// PaymentMethod is a closed enumeration; free-form method strings are rejected
// at the boundary so reporting never groups over unbounded keys.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCheck    PaymentMethod = "check"
)

var paymentDisplayNames = map[PaymentMethod]string{
	PaymentCash:     "Efectivo",
	PaymentCard:     "Tarjeta",
	PaymentTransfer: "Transferencia",
	PaymentCheck:    "Cheque",
}

// PaymentMethods lists every valid method in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCash, PaymentCard, PaymentTransfer, PaymentCheck}
}

// ParsePaymentMethod validates a raw method identifier against the enumeration.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if _, ok := paymentDisplayNames[m]; !ok {
		return "", fmt.Errorf("unknown payment method %q", s)
	}
	return m, nil
}

// DisplayName returns the fixed human-readable name for the method.
func (m PaymentMethod) DisplayName() string {
	if name, ok := paymentDisplayNames[m]; ok {
		return name
	}
	return "Desconocido"
}

// Sale is a single committed ledger record. It is immutable once appended;
// the only mutation the ledger defines over existing records is deletion by id.
type Sale struct {
	ID        int64           `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Items     []string        `json:"items"` // item-name snapshot, detached from any cart
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
	Kind      SaleKind        `json:"kind"`
}

// NewSale builds a sale-kind record, enforcing that the amount is non-negative.
// Checkout does not use this constructor: a committed total is recorded unchanged
// even when a large discount drives it negative.
func NewSale(timestamp time.Time, items []string, amount decimal.Decimal, method PaymentMethod) (Sale, error) {
	if amount.IsNegative() {
		return Sale{}, fmt.Errorf("sale amount %s must not be negative", amount)
	}
	return Sale{
		Timestamp: timestamp,
		Items:     append([]string(nil), items...),
		Amount:    amount,
		Method:    method,
		Kind:      KindSale,
	}, nil
}

// NewRefund builds a refund-kind record, enforcing that the amount is non-positive.
func NewRefund(timestamp time.Time, items []string, amount decimal.Decimal, method PaymentMethod) (Sale, error) {
	if amount.IsPositive() {
		return Sale{}, fmt.Errorf("refund amount %s must not be positive", amount)
	}
	return Sale{
		Timestamp: timestamp,
		Items:     append([]string(nil), items...),
		Amount:    amount,
		Method:    method,
		Kind:      KindRefund,
	}, nil
}
