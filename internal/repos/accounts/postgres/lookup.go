package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/srjn0201/betting/internal/repos/accounts"
)

func (r *accountsRepo) ByUsername(ctx context.Context, username string) (accounts.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE username = $1
	`, username)

	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Account{}, accounts.ErrAccountNotFound
		}

		return accounts.Account{}, fmt.Errorf("account by username: %w", err)
	}

	return a, nil
}

func (r *accountsRepo) ByID(ctx context.Context, id int64) (accounts.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1
	`, id)

	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Account{}, accounts.ErrAccountNotFound
		}

		return accounts.Account{}, fmt.Errorf("account by id: %w", err)
	}

	return a, nil
}
