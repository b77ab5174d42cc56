// Package wallet implements the transfer protocol and the balance
// engine over the append-only transaction log. Balances are derived on
// every read; there is no stored balance anywhere to drift.
package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/srjn0201/betting/internal/repos/accounts"
	pgaccounts "github.com/srjn0201/betting/internal/repos/accounts/postgres"
	"github.com/srjn0201/betting/internal/repos/ledger"
	pgledger "github.com/srjn0201/betting/internal/repos/ledger/postgres"
)

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrTransferNotAllowed = errors.New("transfer not allowed")
	ErrRecipientNotFound  = errors.New("recipient not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
)

type Service struct {
	db       *sql.DB
	accounts accounts.Accounts
	entries  ledger.Ledger
}

func New(db *sql.DB) *Service {
	return &Service{
		db:       db,
		accounts: pgaccounts.New(db),
		entries:  pgledger.New(db),
	}
}

// Balance derives the account's balance from the log: credits received
// (SYSTEM_DEPOSIT, TRANSFER_CREDIT) minus debits sent (TRANSFER_DEBIT).
func (s *Service) Balance(ctx context.Context, accountID int64) (int64, error) {
	bal, err := s.BalanceIn(ctx, s.db, accountID)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return bal, nil
}

// BalanceIn runs the two aggregate halves against q, which is the pool
// for plain reads and the open transaction when a sender row lock must
// cover the computation (the transfer and staking commits).
func (s *Service) BalanceIn(ctx context.Context, q ledger.Querier, accountID int64) (int64, error) {
	credits, err := s.entries.SumCredits(ctx, q, accountID)
	if err != nil {
		return 0, fmt.Errorf("sum credits: %w", err)
	}

	debits, err := s.entries.SumDebits(ctx, q, accountID)
	if err != nil {
		return 0, fmt.Errorf("sum debits: %w", err)
	}

	return credits - debits, nil
}

// Entries returns the account's ledger entries, newest first.
func (s *Service) Entries(ctx context.Context, accountID int64) ([]ledger.Entry, error) {
	out, err := s.entries.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return out, nil
}
