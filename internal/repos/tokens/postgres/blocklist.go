package tokens

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/srjn0201/betting/internal/repos/tokens"
)

var _ tokens.Blocklist = (*blocklistRepo)(nil)

type blocklistRepo struct{ db *sql.DB }

func New(db *sql.DB) *blocklistRepo {
	return &blocklistRepo{db: db}
}

func (r *blocklistRepo) Add(ctx context.Context, jti string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO token_blocklist (jti)
		VALUES ($1)
		ON CONFLICT (jti) DO NOTHING
	`, jti)
	if err != nil {
		return fmt.Errorf("blocklist add: %w", err)
	}

	return nil
}

func (r *blocklistRepo) Contains(ctx context.Context, jti string) (bool, error) {
	var exists bool

	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM token_blocklist WHERE jti = $1)
	`, jti).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("blocklist contains: %w", err)
	}

	return exists, nil
}
