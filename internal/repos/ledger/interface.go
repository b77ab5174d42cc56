// Package ledger defines the append-only transaction log. Entries are
// the sole source of truth for balances: nothing in the schema or in
// this interface can update or delete a row once written.
package ledger

import (
	"context"
	"database/sql"
	"time"
)

type Kind string

const (
	KindSystemDeposit  Kind = "SYSTEM_DEPOSIT"
	KindTransferDebit  Kind = "TRANSFER_DEBIT"
	KindTransferCredit Kind = "TRANSFER_CREDIT"
	KindBetStake       Kind = "BET_STAKE"
)

// Entry is one immutable value movement. SenderID is nil for
// system-originated credits. AmountMinor is always strictly positive.
type Entry struct {
	ID          int64
	SenderID    *int64
	RecipientID int64
	AmountMinor int64
	Kind        Kind
	CreatedAt   time.Time
}

// Querier is the read surface shared by *sql.DB and *sql.Tx, so the
// aggregate queries can run either against the pool or inside the same
// transaction that holds a sender row lock.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Ledger interface {
	// Insert appends the entry and returns it with the id and the
	// server-assigned timestamp filled in.
	Insert(tx *sql.Tx, e Entry) (Entry, error)
	// ListByAccount returns every entry where the account is sender or
	// recipient, newest first (id breaks timestamp ties).
	ListByAccount(ctx context.Context, accountID int64) ([]Entry, error)
	// SumCredits aggregates SYSTEM_DEPOSIT and TRANSFER_CREDIT amounts
	// received by the account.
	SumCredits(ctx context.Context, q Querier, accountID int64) (int64, error)
	// SumDebits aggregates TRANSFER_DEBIT amounts sent by the account.
	SumDebits(ctx context.Context, q Querier, accountID int64) (int64, error)
}
