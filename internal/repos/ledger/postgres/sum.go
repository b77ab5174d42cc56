package ledger

import (
	"context"
	"fmt"

	"github.com/srjn0201/betting/internal/repos/ledger"
)

// SumCredits and SumDebits are the two halves of the balance formula.
// They run as independent aggregates; the caller subtracts. BET_STAKE
// entries are not counted on either side: the stake recorded as leaving
// a player is not subtracted from their balance. Known anomaly carried
// over as-is, pending product sign-off.

func (r *ledgerRepo) SumCredits(ctx context.Context, q ledger.Querier, accountID int64) (int64, error) {
	var sum int64

	err := q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_minor), 0)
		FROM transactions
		WHERE recipient_id = $1
		  AND kind IN ('SYSTEM_DEPOSIT', 'TRANSFER_CREDIT')
	`, accountID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum credits: %w", err)
	}

	return sum, nil
}

func (r *ledgerRepo) SumDebits(ctx context.Context, q ledger.Querier, accountID int64) (int64, error) {
	var sum int64

	err := q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_minor), 0)
		FROM transactions
		WHERE sender_id = $1
		  AND kind = 'TRANSFER_DEBIT'
	`, accountID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum debits: %w", err)
	}

	return sum, nil
}
