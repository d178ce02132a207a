package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleCommitted is emitted after a cart is successfully committed to the ledger.
type SaleCommitted struct {
	EventID    string          `json:"event_id"`
	SaleID     int64           `json:"sale_id"`
	Items      []string        `json:"items"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	OccurredAt time.Time       `json:"occurred_at"`
}
