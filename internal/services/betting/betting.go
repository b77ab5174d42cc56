// Package betting couples stake consumption to bet creation: one
// BET_STAKE ledger entry and one bet row, committed together or not at
// all.
package betting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/srjn0201/betting/internal/infra/pgutils"
	"github.com/srjn0201/betting/internal/repos/accounts"
	pgaccounts "github.com/srjn0201/betting/internal/repos/accounts/postgres"
	"github.com/srjn0201/betting/internal/repos/bets"
	pgbets "github.com/srjn0201/betting/internal/repos/bets/postgres"
	"github.com/srjn0201/betting/internal/repos/ledger"
	pgledger "github.com/srjn0201/betting/internal/repos/ledger/postgres"
	"github.com/srjn0201/betting/internal/services/wallet"
)

var (
	ErrBettingNotAllowed = errors.New("betting not allowed")
	ErrInvalidStake      = errors.New("stake must be positive")
	ErrInsufficientFunds = wallet.ErrInsufficientFunds

	// ErrHouseMissing means the designated house account does not
	// exist. That is broken server state, not a user error.
	ErrHouseMissing = errors.New("house account missing")
)

type Service struct {
	db            *sql.DB
	houseUsername string
	accounts      accounts.Accounts
	entries       ledger.Ledger
	bets          bets.Bets
	wallet        *wallet.Service
}

func New(db *sql.DB, houseUsername string) *Service {
	return &Service{
		db:            db,
		houseUsername: houseUsername,
		accounts:      pgaccounts.New(db),
		entries:       pgledger.New(db),
		bets:          pgbets.New(db),
		wallet:        wallet.New(db),
	}
}

// Place records a wager for player. Only the most junior role may bet;
// the stake must be covered by the player's derived balance, checked
// under the player's row lock in the same transaction that appends the
// BET_STAKE entry (recipient = house) and inserts the ACTIVE bet row.
// Sufficiency is checked before the house account is resolved, so an
// overdrawn player sees ErrInsufficientFunds even on a broken server.
func (s *Service) Place(ctx context.Context, player accounts.Account, fixtureID int64, market string, odds decimal.Decimal, stakeMinor int64) (bets.Bet, error) {
	if stakeMinor <= 0 {
		return bets.Bet{}, ErrInvalidStake
	}

	if !player.Role.CanPlaceBets() {
		return bets.Bet{}, ErrBettingNotAllowed
	}

	var placed bets.Bet

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.accounts.Lock(tx, player.ID)
		if err != nil {
			return fmt.Errorf("lock player: %w", err)
		}

		balance, err := s.wallet.BalanceIn(ctx, tx, player.ID)
		if err != nil {
			return fmt.Errorf("balance under lock: %w", err)
		}

		if balance < stakeMinor {
			return ErrInsufficientFunds
		}

		house, err := s.accounts.ByUsername(ctx, s.houseUsername)
		if err != nil {
			if errors.Is(err, accounts.ErrAccountNotFound) {
				slog.Error("house account not found, bets cannot be placed",
					"house_username", s.houseUsername)

				return ErrHouseMissing
			}

			return fmt.Errorf("resolve house: %w", err)
		}

		playerID := player.ID

		_, err = s.entries.Insert(tx, ledger.Entry{
			SenderID:    &playerID,
			RecipientID: house.ID,
			AmountMinor: stakeMinor,
			Kind:        ledger.KindBetStake,
		})
		if err != nil {
			return fmt.Errorf("append stake: %w", err)
		}

		placed, err = s.bets.Insert(tx, bets.Bet{
			AccountID:  player.ID,
			FixtureID:  fixtureID,
			Market:     market,
			Odds:       odds,
			StakeMinor: stakeMinor,
			Status:     bets.StatusActive,
		})
		if err != nil {
			return fmt.Errorf("insert bet: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return bets.Bet{}, ErrInsufficientFunds
		}

		if errors.Is(err, ErrHouseMissing) {
			return bets.Bet{}, ErrHouseMissing
		}

		return bets.Bet{}, fmt.Errorf("place bet: %w", err)
	}

	return placed, nil
}

// ListByAccount returns the account's bets, newest first.
func (s *Service) ListByAccount(ctx context.Context, accountID int64) ([]bets.Bet, error) {
	out, err := s.bets.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list bets: %w", err)
	}

	return out, nil
}
