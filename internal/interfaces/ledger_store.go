package interfaces

import (
	"context"

	"github.com/saulmedina/pos-transaction-engine/internal/models"
)

// SaleStore is the storage port for committed sale records. Implementations
// keep the ledger ordering most-recent-first.
type SaleStore interface {
	SaveSale(ctx context.Context, sale models.Sale) error
	// DeleteSale reports whether a record with the id existed.
	DeleteSale(id int64) (bool, error)
	ListSales() ([]models.Sale, error)
}
