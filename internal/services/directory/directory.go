// Package directory manages the account hierarchy: creation under the
// seniority rules and parent/child queries.
package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/srjn0201/betting/internal/infra/pgutils"
	"github.com/srjn0201/betting/internal/repos/accounts"
	pgaccounts "github.com/srjn0201/betting/internal/repos/accounts/postgres"
	"github.com/srjn0201/betting/internal/roles"
)

var (
	ErrRoleNotAllowed = errors.New("creator may only create junior roles")
	ErrUnknownRole    = roles.ErrUnknownRole
	ErrUsernameTaken  = accounts.ErrUsernameTaken
	ErrNotFound       = accounts.ErrAccountNotFound
)

type Service struct {
	db       *sql.DB
	accounts accounts.Accounts
}

func New(db *sql.DB) *Service {
	return &Service{
		db:       db,
		accounts: pgaccounts.New(db),
	}
}

// Create adds an account under creator. The new account's role must be
// strictly junior to the creator's, and the creator becomes its parent,
// so the hierarchy stays acyclic by construction. A duplicate username
// surfaces as ErrUsernameTaken from the unique index, not from a
// pre-check.
func (s *Service) Create(ctx context.Context, creator accounts.Account, username, password, roleName string) (accounts.Account, error) {
	role, err := roles.Parse(roleName)
	if err != nil {
		return accounts.Account{}, err
	}

	if !creator.Role.CanCreate(role) {
		return accounts.Account{}, ErrRoleNotAllowed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("hash password: %w", err)
	}

	var created accounts.Account

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		parentID := creator.ID

		created, err = s.accounts.Insert(tx, username, string(hash), role, &parentID)
		if err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, accounts.ErrUsernameTaken) {
			return accounts.Account{}, ErrUsernameTaken
		}

		return accounts.Account{}, fmt.Errorf("create account: %w", err)
	}

	return created, nil
}

// Lookup resolves a username to its account.
func (s *Service) Lookup(ctx context.Context, username string) (accounts.Account, error) {
	a, err := s.accounts.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return accounts.Account{}, ErrNotFound
		}

		return accounts.Account{}, fmt.Errorf("lookup: %w", err)
	}

	return a, nil
}

// Children returns the accounts created by accountID, ordered by id.
func (s *Service) Children(ctx context.Context, accountID int64) ([]accounts.Account, error) {
	out, err := s.accounts.Children(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("children: %w", err)
	}

	return out, nil
}
