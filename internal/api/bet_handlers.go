package api

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/srjn0201/betting/internal/repos/bets"
	"github.com/srjn0201/betting/internal/services/betting"
)

type betResponse struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"account_id"`
	FixtureID int64  `json:"fixture_id"`
	Market    string `json:"market"`
	Odds      string `json:"odds"`
	Stake     string `json:"stake"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func toBetResponse(b bets.Bet) betResponse {
	return betResponse{
		ID:        b.ID,
		AccountID: b.AccountID,
		FixtureID: b.FixtureID,
		Market:    b.Market,
		Odds:      b.Odds.String(),
		Stake:     renderMinor(b.StakeMinor),
		Status:    string(b.Status),
		CreatedAt: formatTime(b.CreatedAt),
	}
}

func toBetResponses(in []bets.Bet) []betResponse {
	out := make([]betResponse, 0, len(in))
	for _, b := range in {
		out = append(out, toBetResponse(b))
	}

	return out
}

type placeBetRequest struct {
	FixtureID int64  `json:"fixture_id" validate:"required,gt=0"`
	Market    string `json:"market" validate:"required"`
	Odds      string `json:"odds" validate:"required"`
	Stake     string `json:"stake" validate:"required"`
}

// PlaceBetHandler handles POST /bets.
func (h *HandlerProvider) PlaceBetHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAccount(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeInvalidToken, "not authenticated")
		return
	}

	var req placeBetRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	odds, err := decimal.NewFromString(req.Odds)
	if err != nil || !odds.IsPositive() {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid odds")
		return
	}

	stakeMinor, err := parseAmountMinor(req.Stake)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	bet, err := h.betting.Place(r.Context(), caller, req.FixtureID, req.Market, odds, stakeMinor)
	if err != nil {
		switch {
		case errors.Is(err, betting.ErrBettingNotAllowed):
			writeError(w, http.StatusForbidden, codeForbidden, "only players can place bets")
		case errors.Is(err, betting.ErrInsufficientFunds):
			writeError(w, http.StatusConflict, codeInsufficientBalance, "insufficient balance")
		case errors.Is(err, betting.ErrInvalidStake):
			writeError(w, http.StatusBadRequest, codeBadRequest, "stake must be > 0")
		case errors.Is(err, betting.ErrHouseMissing):
			writeError(w, http.StatusInternalServerError, codeHouseMissing, "house account missing")
		default:
			writeInternal(w, err)
		}

		return
	}

	writeJSON(w, http.StatusCreated, toBetResponse(bet))
}

// ListBetsHandler handles GET /bets for the authenticated account.
func (h *HandlerProvider) ListBetsHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAccount(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeInvalidToken, "not authenticated")
		return
	}

	userBets, err := h.betting.ListByAccount(r.Context(), caller.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBetResponses(userBets))
}
