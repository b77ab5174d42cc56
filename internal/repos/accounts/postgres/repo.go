package accounts

import (
	"database/sql"

	"github.com/srjn0201/betting/internal/repos/accounts"
	"github.com/srjn0201/betting/internal/roles"
)

var _ accounts.Accounts = (*accountsRepo)(nil)

type accountsRepo struct{ db *sql.DB }

func New(db *sql.DB) *accountsRepo {
	return &accountsRepo{db: db}
}

const accountColumns = `id, username, password_hash, role, parent_id, created_at`

func scanAccount(row interface{ Scan(...any) error }) (accounts.Account, error) {
	var (
		a    accounts.Account
		role string
	)

	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &role, &a.ParentID, &a.CreatedAt)
	if err != nil {
		return accounts.Account{}, err
	}

	// The column has a CHECK constraint over the role set; no re-parse.
	a.Role = roles.Role(role)

	return a, nil
}
