package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/srjn0201/betting/internal/repos/accounts"
)

type contextKey struct{}

var accountKey contextKey

// requireAuth validates the bearer token and stores the resolved
// account in the request context. The core never sees credentials,
// only the already-authenticated account.
func (h *HandlerProvider) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, codeInvalidToken, "missing bearer token")
			return
		}

		acct, err := h.auth.Validate(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeInvalidToken, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), accountKey, acct)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// callerAccount returns the account requireAuth stored in the context.
func callerAccount(r *http.Request) (accounts.Account, bool) {
	acct, ok := r.Context().Value(accountKey).(accounts.Account)
	return acct, ok
}
