package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// JWKSVerifier validates tokens signed with the project's asymmetric keys
type JWKSVerifier struct {
	jwks     keyfunc.Keyfunc
	issuer   string
	audience string
	cancel   context.CancelFunc
}

// NewJWKSVerifier fetches the key set published under issuer and keeps it refreshed
// until Close. issuer is the auth base, e.g. https://<ref>.supabase.co/auth/v1.
func NewJWKSVerifier(issuer string) (*JWKSVerifier, error) {
	issuer = strings.TrimRight(issuer, "/")
	if issuer == "" {
		return nil, fmt.Errorf("jwks issuer is required")
	}

	// ctx bounds the background refresh, not only the first fetch
	ctx, cancel := context.WithCancel(context.Background())

	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{issuer + "/.well-known/jwks.json"})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create JWKS keyfunc: %w", err)
	}

	return &JWKSVerifier{
		jwks:     jwks,
		issuer:   issuer,
		audience: SupabaseAudience,
		cancel:   cancel,
	}, nil
}

// IssuerFromProjectURL derives the auth issuer from the Supabase project URL
func IssuerFromProjectURL(projectURL string) string {
	if projectURL == "" {
		return ""
	}
	return strings.TrimRight(projectURL, "/") + "/auth/v1"
}

// Validate validates a token and returns the claims
func (v *JWKSVerifier) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, v.jwks.Keyfunc,
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	return claimsOf(token)
}

// Close stops the background key refresh
func (v *JWKSVerifier) Close() error {
	v.cancel()
	return nil
}
