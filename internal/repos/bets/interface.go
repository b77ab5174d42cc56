package bets

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusWon    Status = "WON"
	StatusLost   Status = "LOST"
)

// Bet records a single wager. Only Status is mutable in the schema, and
// nothing mutates it yet: settlement is unimplemented.
type Bet struct {
	ID         int64
	AccountID  int64
	FixtureID  int64
	Market     string
	Odds       decimal.Decimal
	StakeMinor int64
	Status     Status
	CreatedAt  time.Time
}

type Bets interface {
	// Insert stores the bet; it runs inside the same transaction as the
	// BET_STAKE ledger entry so the pair commits or rolls back together.
	Insert(tx *sql.Tx, b Bet) (Bet, error)
	ListByAccount(ctx context.Context, accountID int64) ([]Bet, error)
}
