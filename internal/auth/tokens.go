// Package auth implements the token-gated authorization gate: session
// login with an immediate admin-role check, local token custody, and
// best-effort logout.
package auth

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/riefhanj02/florasight/internal/models"
)

// TokenStore persists the session's four slots (access, identity, and
// refresh tokens plus the authenticated email) in a JSON file. Writes
// overwrite whatever was there; the process holds at most one admin
// session and last write wins.
type TokenStore struct {
	mu   sync.Mutex
	path string

	slots tokenSlots
}

type tokenSlots struct {
	AccessToken   string `json:"access_token"`
	IdentityToken string `json:"identity_token"`
	RefreshToken  string `json:"refresh_token"`
	Email         string `json:"email"`
}

// NewTokenStore creates a store backed by the file at path and loads
// any session persisted by a previous run. A missing file is an empty
// session, not an error.
func NewTokenStore(path string) (*TokenStore, error) {
	ts := &TokenStore{path: path}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ts, nil
		}
		return nil, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&ts.slots); err != nil {
		return nil, err
	}
	return ts, nil
}

// Save stores the token triple and email, replacing any prior session.
func (ts *TokenStore) Save(tokens models.TokenSet, email string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.slots = tokenSlots{
		AccessToken:   tokens.Access,
		IdentityToken: tokens.Identity,
		RefreshToken:  tokens.Refresh,
		Email:         email,
	}
	return ts.persist()
}

// Clear empties all four slots. The file is rewritten rather than
// removed so a concurrent reader never sees a stale session.
func (ts *TokenStore) Clear() error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.slots = tokenSlots{}
	return ts.persist()
}

// Tokens returns the stored triple.
func (ts *TokenStore) Tokens() models.TokenSet {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return models.TokenSet{
		Access:   ts.slots.AccessToken,
		Identity: ts.slots.IdentityToken,
		Refresh:  ts.slots.RefreshToken,
	}
}

// Email returns the stored authenticated email.
func (ts *TokenStore) Email() string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.slots.Email
}

func (ts *TokenStore) persist() error {
	f, err := os.Create(ts.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(&ts.slots)
}
