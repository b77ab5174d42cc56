package bets

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/srjn0201/betting/internal/repos/bets"
)

var _ bets.Bets = (*betsRepo)(nil)

type betsRepo struct{ db *sql.DB }

func New(db *sql.DB) *betsRepo {
	return &betsRepo{db: db}
}

func (r *betsRepo) Insert(tx *sql.Tx, b bets.Bet) (bets.Bet, error) {
	row := tx.QueryRow(`
		INSERT INTO bets (account_id, fixture_id, market, odds, stake_minor, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, b.AccountID, b.FixtureID, b.Market, b.Odds, b.StakeMinor, string(b.Status))

	err := row.Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return bets.Bet{}, fmt.Errorf("insert bet: %w", err)
	}

	return b, nil
}

func (r *betsRepo) ListByAccount(ctx context.Context, accountID int64) ([]bets.Bet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, fixture_id, market, odds, stake_minor, status, created_at
		FROM bets
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("query bets: %w", err)
	}
	defer rows.Close()

	var out []bets.Bet

	for rows.Next() {
		var (
			b      bets.Bet
			status string
		)

		err = rows.Scan(&b.ID, &b.AccountID, &b.FixtureID, &b.Market, &b.Odds, &b.StakeMinor, &status, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan bet: %w", err)
		}

		b.Status = bets.Status(status)

		out = append(out, b)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate bets: %w", err)
	}

	return out, nil
}
