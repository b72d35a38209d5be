// Package identity talks to the external identity provider that issues
// session tokens and holds user attributes.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/riefhanj02/florasight/internal/models"
)

// ErrBadCredentials marks an authentication rejection, as opposed to a
// provider outage or transport failure.
var ErrBadCredentials = errors.New("bad credentials")

// Attribute is a single name/value pair from the provider's user
// profile.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Attribute names consulted by the admin check. The provider flattens
// group membership into one comma-separated value.
const (
	AttrGroups  = "groups"
	AttrIsAdmin = "custom:is_admin"
)

// Provider defines the identity-provider operations the gate consumes.
type Provider interface {
	// Authenticate exchanges credentials for a token triple.
	Authenticate(ctx context.Context, email, password string) (models.TokenSet, error)
	// UserAttributes fetches the profile attributes of the token holder.
	UserAttributes(ctx context.Context, accessToken string) ([]Attribute, error)
	// GlobalSignOut revokes the token everywhere. Best effort.
	GlobalSignOut(ctx context.Context, accessToken string) error
}

// IsAdmin reports whether the attribute set grants the admin role:
// membership in adminGroup, or the custom admin flag set to "true".
func IsAdmin(attrs []Attribute, adminGroup string) bool {
	for _, a := range attrs {
		switch a.Name {
		case AttrGroups:
			for _, g := range strings.Split(a.Value, ",") {
				if strings.TrimSpace(g) == adminGroup {
					return true
				}
			}
		case AttrIsAdmin:
			if a.Value == "true" {
				return true
			}
		}
	}
	return false
}

// HTTPProvider is a JSON-over-HTTP identity provider client.
type HTTPProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPProvider creates a provider client for the given base URL.
func NewHTTPProvider(baseURL string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

// Authenticate POSTs credentials to /authenticate and decodes the
// issued token triple. A non-200 response is an authentication failure.
func (p *HTTPProvider) Authenticate(ctx context.Context, email, password string) (models.TokenSet, error) {
	body := map[string]string{"email": email, "password": password}
	var result struct {
		AccessToken   string `json:"accessToken"`
		IdentityToken string `json:"identityToken"`
		RefreshToken  string `json:"refreshToken"`
	}
	if err := p.post(ctx, "/authenticate", "", body, &result); err != nil {
		return models.TokenSet{}, err
	}
	return models.TokenSet{
		Access:   result.AccessToken,
		Identity: result.IdentityToken,
		Refresh:  result.RefreshToken,
	}, nil
}

// UserAttributes fetches the caller's profile via /userinfo.
func (p *HTTPProvider) UserAttributes(ctx context.Context, accessToken string) ([]Attribute, error) {
	var result struct {
		Attributes []Attribute `json:"attributes"`
	}
	if err := p.post(ctx, "/userinfo", accessToken, struct{}{}, &result); err != nil {
		return nil, err
	}
	return result.Attributes, nil
}

// GlobalSignOut revokes the token via /signout.
func (p *HTTPProvider) GlobalSignOut(ctx context.Context, accessToken string) error {
	return p.post(ctx, "/signout", accessToken, struct{}{}, nil)
}

func (p *HTTPProvider) post(ctx context.Context, path, bearer string, payload, result any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("identity provider %s: status %d: %w", path, resp.StatusCode, ErrBadCredentials)
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("identity provider %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
