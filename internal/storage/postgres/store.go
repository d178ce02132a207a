package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/saulmedina/pos-transaction-engine/internal/interfaces"
	"github.com/saulmedina/pos-transaction-engine/internal/models"
)

// PostgresSaleStore persists sale records in a `sales` table:
//
//	CREATE TABLE sales (
//	    id         BIGINT PRIMARY KEY,
//	    ts         TIMESTAMPTZ NOT NULL,
//	    items      TEXT[] NOT NULL,
//	    amount     NUMERIC NOT NULL,
//	    method     TEXT NOT NULL,
//	    kind       TEXT NOT NULL
//	);
type PostgresSaleStore struct {
	db *sql.DB
}

func NewPostgresSaleStore(db *sql.DB) *PostgresSaleStore {
	return &PostgresSaleStore{
		db: db,
	}
}

func (p *PostgresSaleStore) SaveSale(ctx context.Context, sale models.Sale) error {
	const query = `INSERT INTO sales (id, ts, items, amount, method, kind)
	VALUES ($1,$2,$3,$4,$5,$6)`

	_, err := p.db.ExecContext(ctx, query,
		sale.ID, sale.Timestamp, pq.Array(sale.Items), sale.Amount, string(sale.Method), string(sale.Kind))
	return err
}

func (p *PostgresSaleStore) DeleteSale(id int64) (bool, error) {
	const query = `DELETE FROM sales WHERE id = $1`

	res, err := p.db.Exec(query, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (p *PostgresSaleStore) ListSales() ([]models.Sale, error) {
	// Ids are monotonic, so descending id order is most-recent-first.
	const query = `SELECT id, ts, items, amount, method, kind FROM sales ORDER BY id DESC`

	rows, err := p.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var (
			sale   models.Sale
			items  pq.StringArray
			method string
			kind   string
		)
		if err := rows.Scan(&sale.ID, &sale.Timestamp, &items, &sale.Amount, &method, &kind); err != nil {
			return nil, err
		}
		sale.Items = []string(items)
		sale.Method = models.PaymentMethod(method)
		sale.Kind = models.SaleKind(kind)
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}

var _ interfaces.SaleStore = (*PostgresSaleStore)(nil)
