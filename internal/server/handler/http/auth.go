package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/riefhanj02/florasight/internal/apperrors"
	"github.com/riefhanj02/florasight/internal/auth"
	"github.com/riefhanj02/florasight/internal/models"
)

// SessionGate defines the gate operations required by the session
// handlers.
type SessionGate interface {
	// Login verifies credentials and the admin role, storing tokens on
	// success only.
	Login(ctx context.Context, email, password string) (models.TokenSet, error)
	// Logout ends the session; local tokens are always cleared.
	Logout(ctx context.Context)
	// CurrentUser exposes display-only claims from the identity token.
	CurrentUser() *auth.UnverifiedClaims
	// Email returns the authenticated email of the current session.
	Email() string
}

// SessionHandler handles login, logout, and current-user requests.
type SessionHandler struct {
	Gate SessionGate
}

// LoginRequest is the JSON payload for operator login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/login. A wrong password yields 401 while
// valid credentials without the admin role yield 403; the two failures
// are deliberately distinguishable.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.New(apperrors.InvalidArgument, "invalid request body"))
		return
	}

	tokens, err := h.Gate.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"email":  req.Email,
		"tokens": tokens,
	})
}

// Logout handles POST /api/logout. It always succeeds from the
// caller's perspective; remote sign-out failures are logged upstream.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Gate.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// CurrentUser handles GET /api/me, exposing unverified display claims.
func (h *SessionHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := h.Gate.CurrentUser()
	if claims == nil {
		writeError(w, apperrors.New(apperrors.Unauthorized, "no user"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"subject": claims.Subject,
		"email":   claims.Email,
		"claims":  claims.Custom,
	})
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error kind to an HTTP status and writes the error
// body. Provider trouble during login reads as access denied.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := apperrors.KindOf(err)
	switch kind {
	case apperrors.InvalidArgument:
		status = http.StatusBadRequest
	case apperrors.Unauthorized:
		status = http.StatusUnauthorized
	case apperrors.Forbidden, apperrors.ProviderError:
		status = http.StatusForbidden
	case apperrors.NotFound:
		status = http.StatusNotFound
	case apperrors.StoreError:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"kind":  string(kind),
	})
}
