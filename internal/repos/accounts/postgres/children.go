package accounts

import (
	"context"
	"fmt"

	"github.com/srjn0201/betting/internal/repos/accounts"
)

func (r *accountsRepo) Children(ctx context.Context, parentID int64) ([]accounts.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE parent_id = $1
		ORDER BY id
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("query children: %w", err)
	}
	defer rows.Close()

	var out []accounts.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}

		out = append(out, a)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate children: %w", err)
	}

	return out, nil
}
