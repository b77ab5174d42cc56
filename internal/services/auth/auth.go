// Package auth issues and validates the bearer tokens the API layer
// authenticates with. Passwords are bcrypt hashes; tokens are HS256
// JWTs carrying sub (username) and a uuid jti that can be revoked via
// a Postgres-backed blocklist.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/srjn0201/betting/internal/config"
	"github.com/srjn0201/betting/internal/repos/accounts"
	pgaccounts "github.com/srjn0201/betting/internal/repos/accounts/postgres"
	"github.com/srjn0201/betting/internal/repos/tokens"
	pgtokens "github.com/srjn0201/betting/internal/repos/tokens/postgres"
)

var (
	ErrBadCredentials = errors.New("bad credentials")
	ErrInvalidToken   = errors.New("invalid token")
)

type Service struct {
	secret    []byte
	ttl       time.Duration
	accounts  accounts.Accounts
	blocklist tokens.Blocklist
}

func New(db *sql.DB, cfg config.AuthConfig) *Service {
	return &Service{
		secret:    []byte(cfg.JWTSecret),
		ttl:       cfg.TokenTTL,
		accounts:  pgaccounts.New(db),
		blocklist: pgtokens.New(db),
	}
}

// Login verifies the password and returns a signed token. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	acct, err := s.accounts.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return "", ErrBadCredentials
		}

		return "", fmt.Errorf("lookup account: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password))
	if err != nil {
		return "", ErrBadCredentials
	}

	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   acct.Username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Validate parses the token, rejects revoked jtis, and resolves the
// subject to its account.
func (s *Service) Validate(ctx context.Context, tokenString string) (accounts.Account, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return accounts.Account{}, err
	}

	blocked, err := s.blocklist.Contains(ctx, claims.ID)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("check blocklist: %w", err)
	}

	if blocked {
		return accounts.Account{}, ErrInvalidToken
	}

	acct, err := s.accounts.ByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return accounts.Account{}, ErrInvalidToken
		}

		return accounts.Account{}, fmt.Errorf("resolve subject: %w", err)
	}

	return acct, nil
}

// Revoke blocklists the token's jti. Validation failures are reported
// as ErrInvalidToken; revoking an already-revoked token is a no-op.
func (s *Service) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}

	err = s.blocklist.Add(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("revoke: %w", err)
	}

	return nil
}

func (s *Service) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := new(jwt.RegisteredClaims)

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
