package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riefhanj02/florasight/internal/apperrors"
	"github.com/riefhanj02/florasight/internal/auth"
	"github.com/riefhanj02/florasight/internal/models"
)

// fakeGate implements SessionGate for testing.
type fakeGate struct {
	tokens   models.TokenSet
	loginErr error

	logoutCalls int
	claims      *auth.UnverifiedClaims
	email       string
}

func (f *fakeGate) Login(ctx context.Context, email, password string) (models.TokenSet, error) {
	return f.tokens, f.loginErr
}

func (f *fakeGate) Logout(ctx context.Context) { f.logoutCalls++ }

func (f *fakeGate) CurrentUser() *auth.UnverifiedClaims { return f.claims }

func (f *fakeGate) Email() string { return f.email }

func TestSessionLogin(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		gate         *fakeGate
		expectedCode int
		expectedKind string
	}{
		{
			name:         "admin login succeeds",
			body:         `{"email":"op@example.com","password":"secret"}`,
			gate:         &fakeGate{tokens: models.TokenSet{Access: "a", Identity: "i", Refresh: "r"}},
			expectedCode: http.StatusOK,
		},
		{
			name:         "invalid JSON",
			body:         `not a json`,
			gate:         &fakeGate{},
			expectedCode: http.StatusBadRequest,
			expectedKind: "invalid_argument",
		},
		{
			name:         "bad credentials are 401",
			body:         `{"email":"op@example.com","password":"wrong"}`,
			gate:         &fakeGate{loginErr: apperrors.New(apperrors.Unauthorized, "invalid credentials")},
			expectedCode: http.StatusUnauthorized,
			expectedKind: "unauthorized",
		},
		{
			name:         "valid credentials without admin role are 403",
			body:         `{"email":"op@example.com","password":"secret"}`,
			gate:         &fakeGate{loginErr: apperrors.New(apperrors.Forbidden, "admin role required")},
			expectedCode: http.StatusForbidden,
			expectedKind: "forbidden",
		},
		{
			name:         "provider outage reads as access denied",
			body:         `{"email":"op@example.com","password":"secret"}`,
			gate:         &fakeGate{loginErr: apperrors.New(apperrors.ProviderError, "identity provider unavailable")},
			expectedCode: http.StatusForbidden,
			expectedKind: "provider_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &SessionHandler{Gate: tt.gate}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(tt.body))
			h.Login(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.expectedCode)
			}

			var body map[string]any
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if tt.expectedCode == http.StatusOK {
				if body["email"] != "op@example.com" {
					t.Errorf("email = %v", body["email"])
				}
				if _, ok := body["tokens"]; !ok {
					t.Error("response should carry tokens")
				}
				return
			}
			if body["kind"] != tt.expectedKind {
				t.Errorf("kind = %v, want %q", body["kind"], tt.expectedKind)
			}
		})
	}
}

func TestSessionLogout_AlwaysSucceeds(t *testing.T) {
	gate := &fakeGate{}
	h := &SessionHandler{Gate: gate}

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest("POST", "/logout", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if gate.logoutCalls != 1 {
		t.Errorf("logout calls = %d", gate.logoutCalls)
	}
}

func TestSessionCurrentUser(t *testing.T) {
	gate := &fakeGate{claims: &auth.UnverifiedClaims{
		Subject: "user-9",
		Email:   "op@example.com",
		Custom:  map[string]string{"custom:region": "sarawak"},
	}}
	h := &SessionHandler{Gate: gate}

	rec := httptest.NewRecorder()
	h.CurrentUser(rec, httptest.NewRequest("GET", "/me", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["subject"] != "user-9" || body["email"] != "op@example.com" {
		t.Errorf("body = %v", body)
	}
}

func TestSessionCurrentUser_NoUser(t *testing.T) {
	h := &SessionHandler{Gate: &fakeGate{}}

	rec := httptest.NewRecorder()
	h.CurrentUser(rec, httptest.NewRequest("GET", "/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
