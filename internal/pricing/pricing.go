// Package pricing derives transaction totals from a cart snapshot. Every
// function is pure and recomputes from the line items on each call.
package pricing

import (
	"github.com/saulmedina/pos-transaction-engine/internal/cart"
	"github.com/shopspring/decimal"
)

// TaxRate is the single flat tax rate applied to the pre-discount subtotal.
var TaxRate = decimal.RequireFromString("0.02")

var hundred = decimal.NewFromInt(100)

// Subtotal is the sum of unit price times quantity over all line items.
func Subtotal(c *cart.Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.Items() {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// Tax applies TaxRate to the pre-discount subtotal. The discount is subtracted
// after tax, never before: total = subtotal + tax - discount. Changing this
// ordering changes the financial result whenever a discount is set.
func Tax(c *cart.Cart) decimal.Decimal {
	return Subtotal(c).Mul(TaxRate)
}

// DiscountAmount is the subtotal share given away by the cart's discount
// percentage.
func DiscountAmount(c *cart.Cart) decimal.Decimal {
	return Subtotal(c).Mul(c.DiscountPercent().Div(hundred))
}

// Total is subtotal plus tax minus discount. It is never clamped: a discount
// exceeding subtotal plus tax yields a negative total, passed through
// unchanged.
func Total(c *cart.Cart) decimal.Decimal {
	return Subtotal(c).Add(Tax(c)).Sub(DiscountAmount(c))
}

// Change is the tendered amount minus the total. A negative change means
// insufficient tender; it is advisory only and does not block checkout.
func Change(c *cart.Cart) decimal.Decimal {
	return c.AmountTendered().Sub(Total(c))
}
