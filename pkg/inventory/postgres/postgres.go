// Package postgres persists the inventory transaction log in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"

	"flowershop/pkg/inventory"
)

// Schema creates the journal table.
const Schema = `CREATE TABLE IF NOT EXISTS inventory_transactions (
	id UUID PRIMARY KEY,
	type TEXT NOT NULL,
	flower TEXT NOT NULL,
	quantity INT NOT NULL,
	status TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	at TIMESTAMPTZ NOT NULL
)`

// Journal implements inventory.Journal on top of PostgreSQL.
type Journal struct {
	db *sql.DB
}

// New creates a PostgreSQL journal. The caller must have applied Schema.
func New(db *sql.DB) *Journal {
	return &Journal{db: db}
}

// Record inserts a finalized transaction.
func (j *Journal) Record(ctx context.Context, tx inventory.Transaction) error {
	_, err := j.db.ExecContext(ctx,
		"INSERT INTO inventory_transactions (id,type,flower,quantity,status,error,at) VALUES ($1,$2,$3,$4,$5,$6,$7)",
		tx.ID, string(tx.Type), tx.Flower, tx.Quantity, string(tx.Status), tx.Error, tx.At)
	return err
}

// List returns all recorded transactions, oldest first.
func (j *Journal) List(ctx context.Context) ([]inventory.Transaction, error) {
	rows, err := j.db.QueryContext(ctx, "SELECT id,type,flower,quantity,status,error,at FROM inventory_transactions ORDER BY at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var txs []inventory.Transaction
	for rows.Next() {
		var tx inventory.Transaction
		if err := rows.Scan(&tx.ID, &tx.Type, &tx.Flower, &tx.Quantity, &tx.Status, &tx.Error, &tx.At); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
