package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mafgems/api/internal/auth"
	"github.com/mafgems/api/pkg/response"
	"github.com/rs/zerolog"
)

const (
	localUserID = "userId"
	localEmail  = "email"
	localClaims = "claims"
)

// AuthMiddleware verifies Supabase access tokens
type AuthMiddleware struct {
	verifier auth.TokenVerifier
	log      zerolog.Logger
}

// NewAuthMiddleware creates the middleware; a nil verifier rejects every protected request
func NewAuthMiddleware(verifier auth.TokenVerifier, log zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, log: log}
}

// Authenticate validates the bearer token from the Authorization header
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization header")
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			return response.Unauthorized(c, "Invalid authorization header format")
		}

		if m.verifier == nil {
			return response.Unauthorized(c, "Authentication not configured")
		}

		claims, err := m.verifier.Validate(tokenString)
		if err != nil {
			m.log.Debug().Err(err).Str("path", c.Path()).Msg("[Auth] token rejected")
			return response.Unauthorized(c, "Invalid or expired token")
		}

		setClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present and
// lets every other request through anonymously
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok || m.verifier == nil {
			return c.Next()
		}

		claims, err := m.verifier.Validate(tokenString)
		if err != nil {
			m.log.Debug().Err(err).Str("path", c.Path()).Msg("[Auth] ignoring invalid token")
			return c.Next()
		}

		setClaims(c, claims)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setClaims(c *fiber.Ctx, claims *auth.Claims) {
	c.Locals(localUserID, claims.UserID())
	c.Locals(localEmail, claims.Email)
	c.Locals(localClaims, claims)
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) string {
	if userID, ok := c.Locals(localUserID).(string); ok {
		return userID
	}
	return ""
}

// GetUserEmail extracts user email from context
func GetUserEmail(c *fiber.Ctx) string {
	if email, ok := c.Locals(localEmail).(string); ok {
		return email
	}
	return ""
}
