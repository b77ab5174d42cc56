package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/srjn0201/betting/internal/repos/ledger"
)

var _ ledger.Ledger = (*ledgerRepo)(nil)

type ledgerRepo struct{ db *sql.DB }

func New(db *sql.DB) *ledgerRepo {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) Insert(tx *sql.Tx, e ledger.Entry) (ledger.Entry, error) {
	row := tx.QueryRow(`
		INSERT INTO transactions (sender_id, recipient_id, amount_minor, kind)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, e.SenderID, e.RecipientID, e.AmountMinor, string(e.Kind))

	err := row.Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("insert entry: %w", err)
	}

	return e, nil
}

func (r *ledgerRepo) ListByAccount(ctx context.Context, accountID int64) ([]ledger.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sender_id, recipient_id, amount_minor, kind, created_at
		FROM transactions
		WHERE sender_id = $1 OR recipient_id = $1
		ORDER BY created_at DESC, id DESC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []ledger.Entry

	for rows.Next() {
		var (
			e    ledger.Entry
			kind string
		)

		err = rows.Scan(&e.ID, &e.SenderID, &e.RecipientID, &e.AmountMinor, &kind, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		e.Kind = ledger.Kind(kind)

		out = append(out, e)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return out, nil
}
