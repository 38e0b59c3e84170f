package repository

import (
	"context"
	"database/sql"
)

type txKey struct{}

// Tx runs a function inside a single database transaction. The open
// *sql.Tx rides the context so every repository method called from fn
// joins it; nested WithTx calls reuse the outer transaction. On error
// the transaction rolls back, so cross-entity units such as
// reserve-slot-plus-create-booking apply fully or not at all.
type Tx struct {
	db *sql.DB
}

// NewTx returns a Tx bound to the given database handle.
func NewTx(db *sql.DB) *Tx { return &Tx{db: db} }

// WithTx implements booking.TxRunner.
func (t *Tx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func txFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// queryer is the subset of *sql.DB / *sql.Tx the repositories use.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// q returns the context's transaction when one is open, the plain DB
// handle otherwise. Read-only paths (listings, reporting) run on the DB
// handle and therefore never take engine locks.
func q(ctx context.Context, db *sql.DB) queryer {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
