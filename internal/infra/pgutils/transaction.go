package pgutils

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx runs fn inside a single transaction, committing only if fn
// returns nil. Every ledger write goes through it: a transfer's
// debit/credit pair and a bet's stake entry plus bet row each ride one
// call, together with the row lock and balance re-check that guard
// them. Transactions run at the default isolation level; serialization
// of concurrent spenders comes from the FOR UPDATE locks taken in fn.
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	err = fn(tx)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("rollback after fn error: %v (fn err: %w)", rbErr, err)
		}

		return fmt.Errorf("fn: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
