package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/srjn0201/betting/internal/repos/ledger"
	"github.com/srjn0201/betting/internal/roles"
	"github.com/srjn0201/betting/internal/services/directory"
	"github.com/srjn0201/betting/internal/services/wallet"
)

type balanceResponse struct {
	AccountID int64  `json:"account_id"`
	Balance   string `json:"balance"`
}

type entryResponse struct {
	ID          int64  `json:"id"`
	SenderID    *int64 `json:"sender_id,omitempty"`
	RecipientID int64  `json:"recipient_id"`
	Amount      string `json:"amount"`
	Kind        string `json:"kind"`
	CreatedAt   string `json:"created_at"`
}

func toEntryResponses(in []ledger.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(in))
	for _, e := range in {
		out = append(out, entryResponse{
			ID:          e.ID,
			SenderID:    e.SenderID,
			RecipientID: e.RecipientID,
			Amount:      renderMinor(e.AmountMinor),
			Kind:        string(e.Kind),
			CreatedAt:   formatTime(e.CreatedAt),
		})
	}

	return out
}

// BalanceHandler handles GET /users/me/balance.
func (h *HandlerProvider) BalanceHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAccount(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeInvalidToken, "not authenticated")
		return
	}

	bal, err := h.wallet.Balance(r.Context(), caller.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{AccountID: caller.ID, Balance: renderMinor(bal)})
}

// TransactionsHandler handles GET /users/me/transactions (newest first).
func (h *HandlerProvider) TransactionsHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAccount(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeInvalidToken, "not authenticated")
		return
	}

	entries, err := h.wallet.Entries(r.Context(), caller.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponses(entries))
}

type transferRequest struct {
	RecipientUsername string `json:"recipient_username" validate:"required"`
	Amount            string `json:"amount" validate:"required"`
}

// TransferHandler handles POST /transfers.
func (h *HandlerProvider) TransferHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAccount(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeInvalidToken, "not authenticated")
		return
	}

	var req transferRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	amountMinor, err := parseAmountMinor(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	err = h.wallet.Transfer(r.Context(), caller, req.RecipientUsername, amountMinor)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrTransferNotAllowed):
			writeError(w, http.StatusForbidden, codeForbidden, "transfer not permitted for this sender/recipient")
		case errors.Is(err, wallet.ErrRecipientNotFound):
			writeError(w, http.StatusNotFound, codeNotFound, "recipient not found")
		case errors.Is(err, wallet.ErrInsufficientFunds):
			writeError(w, http.StatusConflict, codeInsufficientBalance, "insufficient balance")
		case errors.Is(err, wallet.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, codeBadRequest, "amount must be > 0")
		default:
			writeInternal(w, err)
		}

		return
	}

	w.WriteHeader(http.StatusCreated)
}

type userDetailsResponse struct {
	Profile      accountResponse   `json:"profile"`
	Balance      string            `json:"balance"`
	Children     []accountResponse `json:"children"`
	Transactions []entryResponse   `json:"transactions"`
	Bets         []betResponse     `json:"bets"`
}

// UserDetailsHandler handles GET /users/{username}/details, a root-only
// full dump of one account.
func (h *HandlerProvider) UserDetailsHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAccount(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeInvalidToken, "not authenticated")
		return
	}

	if caller.Role != roles.Root {
		writeError(w, http.StatusForbidden, codeForbidden, "root only")
		return
	}

	username := chi.URLParam(r, "username")

	target, err := h.directory.Lookup(r.Context(), username)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "user not found")
			return
		}

		writeInternal(w, err)

		return
	}

	bal, err := h.wallet.Balance(r.Context(), target.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	children, err := h.directory.Children(r.Context(), target.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	entries, err := h.wallet.Entries(r.Context(), target.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	userBets, err := h.betting.ListByAccount(r.Context(), target.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userDetailsResponse{
		Profile:      toAccountResponse(target),
		Balance:      renderMinor(bal),
		Children:     toAccountResponses(children),
		Transactions: toEntryResponses(entries),
		Bets:         toBetResponses(userBets),
	})
}
