package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/riefhanj02/florasight/internal/apperrors"
	"github.com/riefhanj02/florasight/internal/identity"
	"github.com/riefhanj02/florasight/internal/models"
)

// Gate owns the session lifecycle: create on login, read on every
// protected call, destroy on logout or a failed admin check.
type Gate struct {
	provider   identity.Provider
	store      *TokenStore
	adminGroup string
	logger     *zap.Logger
}

// NewGate constructs a Gate over the identity provider and token store.
func NewGate(provider identity.Provider, store *TokenStore, adminGroup string, logger *zap.Logger) *Gate {
	return &Gate{provider: provider, store: store, adminGroup: adminGroup, logger: logger}
}

// Login exchanges credentials for a token triple, then immediately
// verifies the admin role with the fresh access token. A non-admin with
// correct credentials is rejected with Forbidden and the just-issued
// tokens are discarded; only a verified admin ever has tokens stored.
func (g *Gate) Login(ctx context.Context, email, password string) (models.TokenSet, error) {
	if email == "" || password == "" {
		return models.TokenSet{}, apperrors.New(apperrors.InvalidArgument, "email and password are required")
	}

	tokens, err := g.provider.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrBadCredentials) {
			return models.TokenSet{}, apperrors.Wrap(apperrors.Unauthorized, "invalid credentials", err)
		}
		// Provider trouble is never treated as success; callers see it
		// as access denied, not as a credentials problem.
		return models.TokenSet{}, apperrors.Wrap(apperrors.ProviderError, "identity provider unavailable", err)
	}

	if !g.checkAdminRole(ctx, tokens.Access) {
		// Never store tokens for a caller that did not verify as admin.
		return models.TokenSet{}, apperrors.New(apperrors.Forbidden, "admin role required")
	}

	if err := g.store.Save(tokens, email); err != nil {
		return models.TokenSet{}, apperrors.Wrap(apperrors.StoreError, "storing session tokens", err)
	}
	return tokens, nil
}

// checkAdminRole queries the provider for the caller's attributes.
// Any failure counts as not-admin; ambiguity always fails closed.
func (g *Gate) checkAdminRole(ctx context.Context, accessToken string) bool {
	attrs, err := g.provider.UserAttributes(ctx, accessToken)
	if err != nil {
		g.logger.Warn("admin role check failed, treating as not admin", zap.Error(err))
		return false
	}
	return identity.IsAdmin(attrs, g.adminGroup)
}

// Logout signs the session out of the provider on a best-effort basis
// and then clears local tokens unconditionally. A remote failure is
// logged, never surfaced; the local session always ends.
func (g *Gate) Logout(ctx context.Context) {
	if access := g.store.Tokens().Access; access != "" {
		if err := g.provider.GlobalSignOut(ctx, access); err != nil {
			g.logger.Warn("remote sign-out failed", zap.Error(err))
		}
	}
	if err := g.store.Clear(); err != nil {
		g.logger.Error("clearing local tokens failed", zap.Error(err))
	}
}

// IsAuthenticated reports whether both access and identity tokens are
// present locally. This is a presence check only; it does not
// re-validate the tokens with the provider.
func (g *Gate) IsAuthenticated() bool {
	t := g.store.Tokens()
	return t.Access != "" && t.Identity != ""
}

// CurrentUser decodes the stored identity token's claims for display.
// Returns nil when no identity token is stored or decoding fails.
func (g *Gate) CurrentUser() *UnverifiedClaims {
	idToken := g.store.Tokens().Identity
	if idToken == "" {
		return nil
	}
	claims, ok := decodeClaims(idToken)
	if !ok {
		return nil
	}
	return claims
}

// AccessToken returns the stored bearer token for stamping outbound
// authorized calls. Empty when no session exists.
func (g *Gate) AccessToken() string {
	return g.store.Tokens().Access
}

// Email returns the authenticated email of the current session.
func (g *Gate) Email() string {
	return g.store.Email()
}
