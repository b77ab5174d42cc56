package accounts

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/srjn0201/betting/internal/repos/accounts"
	"github.com/srjn0201/betting/internal/roles"
)

func (r *accountsRepo) Insert(tx *sql.Tx, username, passwordHash string, role roles.Role, parentID *int64) (accounts.Account, error) {
	row := tx.QueryRow(`
		INSERT INTO accounts (username, password_hash, role, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+accountColumns,
		username, passwordHash, string(role), parentID)

	a, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return accounts.Account{}, accounts.ErrUsernameTaken
			}
		}

		return accounts.Account{}, fmt.Errorf("insert account: %w", err)
	}

	return a, nil
}
