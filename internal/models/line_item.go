package models

import "github.com/shopspring/decimal"

// LineItem is one entry in a cart. Items are owned by the cart that holds them
// and are discarded on removal or clear.
type LineItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// LineTotal returns unit price times quantity for this line.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
