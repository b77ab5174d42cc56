package accounts

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/srjn0201/betting/internal/roles"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("username taken")
)

// Account is one node of the hierarchy. Role and ParentID are immutable
// after insert; accounts are never deleted.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         roles.Role
	ParentID     *int64
	CreatedAt    time.Time
}

type Accounts interface {
	// Insert creates the account row. A username collision is reported
	// as ErrUsernameTaken (unique index, not a pre-check).
	Insert(tx *sql.Tx, username, passwordHash string, role roles.Role, parentID *int64) (Account, error)
	ByUsername(ctx context.Context, username string) (Account, error)
	ByID(ctx context.Context, id int64) (Account, error)
	// Children returns accounts whose parent is parentID, ordered by id.
	Children(ctx context.Context, parentID int64) ([]Account, error)
	// Lock takes a FOR UPDATE row lock on the account, serializing
	// balance check-and-commit flows against it for the life of tx.
	Lock(tx *sql.Tx, id int64) error
}
