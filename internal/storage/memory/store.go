package memory

import (
	"context"
	"sync"

	"github.com/saulmedina/pos-transaction-engine/internal/interfaces"
	"github.com/saulmedina/pos-transaction-engine/internal/models"
)

// MemorySaleStore is an in-memory implementation of interfaces.SaleStore.
// It keeps sale records in a slice ordered most-recent-first and is safe for
// concurrent use.
type MemorySaleStore struct {
	mu    sync.Mutex // protects sales from concurrent access
	sales []models.Sale
}

// NewMemorySaleStore creates an empty in-memory sale store.
func NewMemorySaleStore() *MemorySaleStore {
	return &MemorySaleStore{
		sales: make([]models.Sale, 0),
	}
}

// SaveSale inserts the record at the front so the newest sale is listed first.
func (m *MemorySaleStore) SaveSale(ctx context.Context, sale models.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sales = append([]models.Sale{sale}, m.sales...)
	return nil
}

// DeleteSale removes the record with the given id and reports whether it
// existed. Deletion is destructive; no trace of the record is kept.
func (m *MemorySaleStore) DeleteSale(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.sales {
		if s.ID == id {
			m.sales = append(m.sales[:i], m.sales[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListSales returns a copy of all records, most-recent-first, so callers
// cannot mutate internal state.
func (m *MemorySaleStore) ListSales() ([]models.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.Sale, len(m.sales))
	copy(copied, m.sales)
	return copied, nil
}

// Compile-time check: ensure MemorySaleStore implements SaleStore.
var _ interfaces.SaleStore = (*MemorySaleStore)(nil)
