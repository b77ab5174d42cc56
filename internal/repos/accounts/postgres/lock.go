package accounts

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/srjn0201/betting/internal/repos/accounts"
)

func (r *accountsRepo) Lock(tx *sql.Tx, id int64) error {
	var locked int64

	err := tx.QueryRow(`
		SELECT id
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.ErrAccountNotFound
		}

		return fmt.Errorf("lock account: %w", err)
	}

	return nil
}
