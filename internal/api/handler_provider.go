package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/srjn0201/betting/internal/repos/accounts"
	"github.com/srjn0201/betting/internal/services/auth"
	"github.com/srjn0201/betting/internal/services/betting"
	"github.com/srjn0201/betting/internal/services/directory"
	"github.com/srjn0201/betting/internal/services/wallet"
)

// HandlerProvider wraps the core services and exposes HTTP handlers.
type HandlerProvider struct {
	auth      *auth.Service
	directory *directory.Service
	wallet    *wallet.Service
	betting   *betting.Service
	validate  *validator.Validate
}

func NewHandler(authSvc *auth.Service, dirSvc *directory.Service, walletSvc *wallet.Service, bettingSvc *betting.Service) *HandlerProvider {
	return &HandlerProvider{
		auth:      authSvc,
		directory: dirSvc,
		wallet:    walletSvc,
		betting:   bettingSvc,
		validate:  validator.New(),
	}
}

// decodeBody decodes and validates a JSON request payload.
func (h *HandlerProvider) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, codeBadRequest, "empty body")
			return false
		}

		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid JSON")

		return false
	}

	err = h.validate.Struct(dst)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "missing or invalid fields")
		return false
	}

	return true
}

// --- DTOs ---

type accountResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

func toAccountResponse(a accounts.Account) accountResponse {
	return accountResponse{
		ID:       a.ID,
		Username: a.Username,
		Role:     string(a.Role),
		ParentID: a.ParentID,
	}
}

func toAccountResponses(in []accounts.Account) []accountResponse {
	out := make([]accountResponse, 0, len(in))
	for _, a := range in {
		out = append(out, toAccountResponse(a))
	}

	return out
}

// --- Auth handlers ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginHandler handles POST /token.
func (h *HandlerProvider) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			writeError(w, http.StatusUnauthorized, codeBadCredentials, "incorrect username or password")
			return
		}

		writeInternal(w, err)

		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// LogoutHandler handles POST /logout: it revokes the presented token.
func (h *HandlerProvider) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeInvalidToken, "missing bearer token")
		return
	}

	err := h.auth.Revoke(r.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, codeInvalidToken, "invalid token")
			return
		}

		writeInternal(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- User handlers ---

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

// CreateUserHandler handles POST /users. The caller becomes the parent
// of the created account.
func (h *HandlerProvider) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAccount(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeInvalidToken, "not authenticated")
		return
	}

	var req createUserRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	created, err := h.directory.Create(r.Context(), caller, req.Username, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, directory.ErrUnknownRole):
			writeError(w, http.StatusBadRequest, codeRoleNotFound, "role does not exist")
		case errors.Is(err, directory.ErrRoleNotAllowed):
			writeError(w, http.StatusForbidden, codeForbidden, "cannot create an account with this role")
		case errors.Is(err, directory.ErrUsernameTaken):
			writeError(w, http.StatusConflict, codeUsernameTaken, "username already registered")
		default:
			writeInternal(w, err)
		}

		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(created))
}

// MeHandler handles GET /users/me.
func (h *HandlerProvider) MeHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAccount(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeInvalidToken, "not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(caller))
}

// ChildrenHandler handles GET /users/me/children.
func (h *HandlerProvider) ChildrenHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAccount(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeInvalidToken, "not authenticated")
		return
	}

	children, err := h.directory.Children(r.Context(), caller.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponses(children))
}

// HealthzHandler handles GET /healthz.
func HealthzHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// used by entry/bet DTO timestamps
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
