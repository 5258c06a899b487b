package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mafgems/api/internal/auth"
	"github.com/mafgems/api/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	tokens map[string]string
}

func (s stubVerifier) Validate(token string) (*auth.Claims, error) {
	sub, ok := s.tokens[token]
	if !ok {
		return nil, errors.New("bad token")
	}
	c := &auth.Claims{Email: sub + "@example.com"}
	c.Subject = sub
	return c, nil
}

func (s stubVerifier) Close() error { return nil }

func whoAmI(c *fiber.Ctx) error {
	return c.SendString(GetUserID(c))
}

func call(t *testing.T, app *fiber.App, method, path, authHeader string) (int, string, http.Header) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body), resp.Header
}

func TestAuthenticate(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{tokens: map[string]string{"good": "user-1"}}, zerolog.Nop())
	app := fiber.New()
	app.Get("/me", m.Authenticate(), whoAmI)

	status, body, _ := call(t, app, "GET", "/me", "Bearer good")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "user-1", body)

	for _, header := range []string{"", "Basic abc", "Bearer ", "Bearer bad"} {
		status, _, _ := call(t, app, "GET", "/me", header)
		assert.Equal(t, http.StatusUnauthorized, status, header)
	}
}

func TestAuthenticate_NoVerifier(t *testing.T) {
	app := fiber.New()
	app.Get("/me", NewAuthMiddleware(nil, zerolog.Nop()).Authenticate(), whoAmI)

	status, body, _ := call(t, app, "GET", "/me", "Bearer good")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "Authentication not configured")
}

func TestOptionalAuth(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{tokens: map[string]string{"good": "user-1"}}, zerolog.Nop())
	app := fiber.New()
	app.Get("/me", m.OptionalAuth(), whoAmI)

	_, body, _ := call(t, app, "GET", "/me", "Bearer good")
	assert.Equal(t, "user-1", body)

	status, body, _ := call(t, app, "GET", "/me", "Bearer bad")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body)

	status, body, _ = call(t, app, "GET", "/me", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body)
}

type memoryCounter struct {
	counts map[string]int64
	err    error
}

func (m *memoryCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	if m.counts == nil {
		m.counts = map[string]int64{}
	}
	m.counts[key]++
	return m.counts[key], window, nil
}

func TestRateLimiter(t *testing.T) {
	counter := &memoryCounter{}
	reg := metrics.New()
	rl := NewRateLimiter(counter, zerolog.Nop(), reg)

	app := fiber.New()
	app.Post("/video", rl.VideoLimit(2), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusAccepted) })

	for i := 0; i < 2; i++ {
		status, _, headers := call(t, app, "POST", "/video", "")
		assert.Equal(t, http.StatusAccepted, status)
		assert.Equal(t, "2", headers.Get("X-RateLimit-Limit"))
	}

	status, body, headers := call(t, app, "POST", "/video", "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Contains(t, body, "RATE_LIMITED")
	assert.Equal(t, "3600", headers.Get("Retry-After"))
	n, err := testutil.GatherAndCount(reg.Registry, "mafgems_rate_limited_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Len(t, counter.counts, 1)
	for key := range counter.counts {
		assert.Contains(t, key, "ratelimit:video:ip:")
	}
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	rl := NewRateLimiter(&memoryCounter{err: errors.New("redis down")}, zerolog.Nop(), nil)
	app := fiber.New()
	app.Post("/upload", rl.UploadLimit(1), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusCreated) })

	for i := 0; i < 3; i++ {
		status, _, _ := call(t, app, "POST", "/upload", "")
		assert.Equal(t, http.StatusCreated, status)
	}

	var disabled *RateLimiter
	app2 := fiber.New()
	app2.Post("/upload", disabled.UploadLimit(1), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusCreated) })
	status, _, _ := call(t, app2, "POST", "/upload", "")
	assert.Equal(t, http.StatusCreated, status)
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID(), AccessLog(zerolog.Nop()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetRequestID(c)) })

	_, body, headers := call(t, app, "GET", "/", "")
	assert.NotEmpty(t, body)
	assert.Equal(t, body, headers.Get("X-Request-ID"))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "caller-id", resp.Header.Get("X-Request-ID"))
}
