package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Stable machine-readable reason codes. Handlers map domain sentinels
// onto these; internal error detail never reaches the client.
const (
	codeBadRequest          = "bad_request"
	codeBadCredentials      = "bad_credentials"
	codeInvalidToken        = "invalid_token"
	codeForbidden           = "forbidden"
	codeNotFound            = "not_found"
	codeUsernameTaken       = "username_taken"
	codeRoleNotFound        = "role_not_found"
	codeInsufficientBalance = "insufficient_balance"
	codeHouseMissing        = "house_account_missing"
	codeStorageUnavailable  = "storage_unavailable"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeInternal logs the real error and hides it behind a generic
// storage failure.
func writeInternal(w http.ResponseWriter, err error) {
	slog.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, codeStorageUnavailable, "storage unavailable")
}
