package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signHS256(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func userClaims(sub string, exp time.Time) Claims {
	return Claims{
		Email: "ada@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Audience:  jwt.ClaimStrings{SupabaseAudience},
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
}

func TestHMACVerifier_Valid(t *testing.T) {
	v := NewHMACVerifier(testSecret)

	claims, err := v.Validate(signHS256(t, testSecret, userClaims("user-1", time.Now().Add(time.Hour))))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestHMACVerifier_Rejects(t *testing.T) {
	v := NewHMACVerifier(testSecret)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", signHS256(t, "another-secret-another-secret-another", userClaims("user-1", time.Now().Add(time.Hour)))},
		{"expired", signHS256(t, testSecret, userClaims("user-1", time.Now().Add(-time.Minute)))},
		{"no subject", signHS256(t, testSecret, userClaims("", time.Now().Add(time.Hour)))},
		{"no expiry", signHS256(t, testSecret, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Audience: jwt.ClaimStrings{SupabaseAudience}}})},
		{"anon audience", signHS256(t, testSecret, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Audience: jwt.ClaimStrings{"anon"}, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}})},
		{"garbage", "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestChain(t *testing.T) {
	token := signHS256(t, testSecret, userClaims("user-1", time.Now().Add(time.Hour)))

	chain := Chain{NewHMACVerifier("first-secret-first-secret-first-secret"), NewHMACVerifier(testSecret)}
	claims, err := chain.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())

	_, err = Chain{}.Validate(token)
	assert.ErrorIs(t, err, ErrNoVerifier)

	assert.NoError(t, chain.Close())
}

func TestJWKSVerifier(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwk := fmt.Sprintf(`{"keys":[{"kty":"RSA","kid":"key-1","alg":"RS256","use":"sig","n":%q,"e":%q}]}`,
		base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
		base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.well-known/jwks.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, jwk)
	}))
	defer srv.Close()

	v, err := NewJWKSVerifier(srv.URL)
	require.NoError(t, err)
	defer v.Close()

	sign := func(issuer string) string {
		claims := userClaims("user-2", time.Now().Add(time.Hour))
		claims.Issuer = issuer
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
		token.Header["kid"] = "key-1"
		s, err := token.SignedString(key)
		require.NoError(t, err)
		return s
	}

	claims, err := v.Validate(sign(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "user-2", claims.UserID())

	_, err = v.Validate(sign("https://elsewhere.example.com/auth/v1"))
	assert.Error(t, err)
}

func TestIssuerFromProjectURL(t *testing.T) {
	assert.Equal(t, "https://abc.supabase.co/auth/v1", IssuerFromProjectURL("https://abc.supabase.co/"))
	assert.Empty(t, IssuerFromProjectURL(""))
}
