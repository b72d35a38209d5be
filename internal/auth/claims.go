package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// UnverifiedClaims are claims read out of the identity token's payload
// without any signature check. They exist for display only and must
// never be treated as a verified identity; authorization always goes
// through the provider-backed admin check.
type UnverifiedClaims struct {
	Subject string            `json:"sub"`
	Email   string            `json:"email"`
	Custom  map[string]string `json:"-"`
}

// decodeClaims extracts the payload section of a JWT-shaped token.
// It fails soft: any structural problem yields (nil, false).
func decodeClaims(identityToken string) (*UnverifiedClaims, bool) {
	parts := strings.Split(identityToken, ".")
	if len(parts) != 3 {
		return nil, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, false
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, false
	}

	claims := &UnverifiedClaims{Custom: make(map[string]string)}
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		switch k {
		case "sub":
			claims.Subject = s
		case "email":
			claims.Email = s
		default:
			claims.Custom[k] = s
		}
	}
	return claims, true
}
