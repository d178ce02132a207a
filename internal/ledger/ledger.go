package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulmedina/pos-transaction-engine/internal/cart"
	"github.com/saulmedina/pos-transaction-engine/internal/errs"
	"github.com/saulmedina/pos-transaction-engine/internal/interfaces"
	"github.com/saulmedina/pos-transaction-engine/internal/models"
	"github.com/saulmedina/pos-transaction-engine/internal/models/events"
	"github.com/saulmedina/pos-transaction-engine/internal/pricing"
)

// TopicSaleCommitted is the event topic for successful commits.
const TopicSaleCommitted = "sale_committed"

// Ledger is the system of record for committed transactions. It owns the id
// counter: ids are monotonically increasing and independent of the current
// collection size, so deleting records can never cause an id to be reused.
type Ledger struct {
	store     interfaces.SaleStore
	publisher interfaces.EventPublisher // nil disables event publishing

	mu     sync.Mutex // serializes id assignment and the commit sequence
	nextID int64
}

// NewLedger creates a ledger over the given store. The id counter resumes past
// the highest id already present, so records survive a store handover without
// collisions. publisher may be nil.
func NewLedger(store interfaces.SaleStore, publisher interfaces.EventPublisher) (*Ledger, error) {
	existing, err := store.ListSales()
	if err != nil {
		return nil, err
	}

	var maxID int64
	for _, s := range existing {
		if s.ID > maxID {
			maxID = s.ID
		}
	}

	return &Ledger{
		store:     store,
		publisher: publisher,
		nextID:    maxID + 1,
	}, nil
}

// Commit turns the cart into a sale record: it computes the final total,
// appends a sale-kind record with the next id and the current timestamp, and
// clears the cart. This is the single checkout entry point and the only write
// path that creates sale records from a transaction.
//
// The total is recorded unchanged even when a large discount makes it
// negative, and insufficient tender does not block the commit.
func (l *Ledger) Commit(ctx context.Context, c *cart.Cart, method models.PaymentMethod) (models.Sale, error) {
	if c.Len() == 0 {
		return models.Sale{}, errs.ErrEmptyCart
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	sale := models.Sale{
		ID:        l.nextID,
		Timestamp: time.Now(),
		Items:     c.ItemNames(),
		Amount:    pricing.Total(c),
		Method:    method,
		Kind:      models.KindSale,
	}

	if err := l.store.SaveSale(ctx, sale); err != nil {
		return models.Sale{}, err
	}
	l.nextID++

	c.Clear()
	l.publish(sale)

	return sale, nil
}

// Seed loads pre-existing records, e.g. historical sales and refunds, into the
// ledger. Ids are assigned here; build records with NewSale or NewRefund so
// the amount-sign invariant is checked.
func (l *Ledger) Seed(ctx context.Context, records []models.Sale) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range records {
		r.ID = l.nextID
		if err := l.store.SaveSale(ctx, r); err != nil {
			return err
		}
		l.nextID++
	}
	return nil
}

// Remove deletes the record with the given id. Deletion is destructive and
// irreversible; no audit trail is kept.
func (l *Ledger) Remove(id int64) error {
	found, err := l.store.DeleteSale(id)
	if err != nil {
		return err
	}
	if !found {
		return &errs.NotFoundError{Entity: "sale", ID: id}
	}
	return nil
}

// All returns a read-only snapshot of the ledger, most-recent-first.
func (l *Ledger) All() ([]models.Sale, error) {
	return l.store.ListSales()
}

// publish emits a SaleCommitted event, best-effort: a broker failure never
// rolls back an already-recorded sale.
func (l *Ledger) publish(sale models.Sale) {
	if l.publisher == nil {
		return
	}

	event := events.SaleCommitted{
		EventID:    uuid.New().String(),
		SaleID:     sale.ID,
		Items:      sale.Items,
		Amount:     sale.Amount,
		Method:     string(sale.Method),
		OccurredAt: sale.Timestamp,
	}
	if err := l.publisher.Publish(TopicSaleCommitted, event); err != nil {
		slog.Warn("failed to publish sale committed event", "sale_id", sale.ID, "error", err)
	}
}
