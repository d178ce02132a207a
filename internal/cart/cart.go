// Package cart holds the mutable working set for one not-yet-committed
// transaction. A cart is private to its register session; it is not safe for
// concurrent use and the caller serializes access.
package cart

import (
	"github.com/saulmedina/pos-transaction-engine/internal/errs"
	"github.com/saulmedina/pos-transaction-engine/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Cart is an ordered sequence of line items plus the discount and tender
// inputs for the pending transaction. Order is preserved for display only;
// totals do not depend on it. No subtotal is cached: pricing recomputes from
// the sequence on every call.
type Cart struct {
	items           []models.LineItem
	discountPercent decimal.Decimal
	amountTendered  decimal.Decimal
}

// New returns an empty cart with zero discount and zero tender.
func New() *Cart {
	return &Cart{}
}

// AddItem appends a line item. Repeated additions of the same name stay
// separate entries; lines are never coalesced.
func (c *Cart) AddItem(name string, unitPrice decimal.Decimal, quantity int) error {
	if name == "" {
		return errs.Validation("name", "must not be empty")
	}
	if unitPrice.IsNegative() {
		return errs.Validation("unit price", "must not be negative")
	}
	if quantity < 1 {
		return errs.Validation("quantity", "must be at least 1")
	}
	c.items = append(c.items, models.LineItem{
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
	})
	return nil
}

// RemoveItem deletes the line at index and returns it so the caller can log
// or undo the removal.
func (c *Cart) RemoveItem(index int) (models.LineItem, error) {
	if index < 0 || index >= len(c.items) {
		return models.LineItem{}, &errs.IndexError{Index: index, Size: len(c.items)}
	}
	removed := c.items[index]
	c.items = append(c.items[:index], c.items[index+1:]...)
	return removed, nil
}

// Clear resets the cart to its initial state: no items, discount 0, tender 0.
func (c *Cart) Clear() {
	c.items = nil
	c.discountPercent = decimal.Zero
	c.amountTendered = decimal.Zero
}

// SetDiscountPercent sets the discount percentage, valid range [0, 100].
func (c *Cart) SetDiscountPercent(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return errs.Validation("discount percent", "must be between 0 and 100")
	}
	c.discountPercent = p
	return nil
}

// SetAmountTendered sets the payment amount received from the customer.
func (c *Cart) SetAmountTendered(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.Validation("amount tendered", "must not be negative")
	}
	c.amountTendered = amount
	return nil
}

// Len reports the number of line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []models.LineItem {
	out := make([]models.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemNames returns the item-name snapshot recorded on a committed sale.
func (c *Cart) ItemNames() []string {
	names := make([]string, len(c.items))
	for i, it := range c.items {
		names[i] = it.Name
	}
	return names
}

// DiscountPercent returns the current discount percentage.
func (c *Cart) DiscountPercent() decimal.Decimal {
	return c.discountPercent
}

// AmountTendered returns the current tendered amount.
func (c *Cart) AmountTendered() decimal.Decimal {
	return c.amountTendered
}
