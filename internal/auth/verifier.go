package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// SupabaseAudience is the aud claim Supabase puts on user access tokens
const SupabaseAudience = "authenticated"

var ErrNoVerifier = errors.New("no token verifier configured")

// TokenVerifier defines the interface for access token verification
type TokenVerifier interface {
	Validate(tokenString string) (*Claims, error)
	Close() error
}

// Claims represents the Supabase access token claims
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID is the Supabase auth user id
func (c *Claims) UserID() string {
	return c.Subject
}

// HMACVerifier validates tokens signed with the project JWT secret
type HMACVerifier struct {
	secret   []byte
	audience string
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret), audience: SupabaseAudience}
}

// Validate validates a token using HMAC signing
func (v *HMACVerifier) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithAudience(v.audience),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	return claimsOf(token)
}

func (v *HMACVerifier) Close() error {
	return nil
}

// Chain tries each verifier in order and returns the first success
type Chain []TokenVerifier

func (c Chain) Validate(tokenString string) (*Claims, error) {
	if len(c) == 0 {
		return nil, ErrNoVerifier
	}
	var errs []error
	for _, v := range c {
		claims, err := v.Validate(tokenString)
		if err == nil {
			return claims, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

func (c Chain) Close() error {
	var errs []error
	for _, v := range c {
		if err := v.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func claimsOf(token *jwt.Token) (*Claims, error) {
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject: %w", jwt.ErrTokenInvalidClaims)
	}
	return claims, nil
}
