package e2e

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mafgems/api/internal/auth"
	"github.com/mafgems/api/internal/client"
	"github.com/mafgems/api/internal/config"
	"github.com/mafgems/api/internal/generation"
	"github.com/mafgems/api/internal/handler"
	"github.com/mafgems/api/internal/metrics"
	"github.com/mafgems/api/internal/middleware"
	"github.com/mafgems/api/internal/repository"
	"github.com/mafgems/api/internal/service"
	ws "github.com/mafgems/api/internal/websocket"
)

const (
	testJWTSecret = "test-secret-for-e2e-at-least-32-characters"
	testUserID    = "6f1c2a9e-8b3d-4c5e-a7f0-1d2e3f4a5b6c"
)

// fakeNewBlack stands in for The New Black API. Handlers are keyed by endpoint.
type fakeNewBlack struct {
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    []string
	forms    []map[string]string
}

func (f *fakeNewBlack) on(endpoint string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[endpoint] = h
}

func (f *fakeNewBlack) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	endpoint := strings.TrimPrefix(r.URL.Path, "/")

	form := map[string]string{}
	if err := r.ParseMultipartForm(1 << 20); err == nil {
		for k, v := range r.MultipartForm.Value {
			form[k] = v[0]
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, endpoint)
	f.forms = append(f.forms, form)
	h := f.handlers[endpoint]
	f.mu.Unlock()

	if h == nil {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

func (f *fakeNewBlack) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func respondJSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

type recordingEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
}

func (e *recordingEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: task.Type()}, nil
}

type testApp struct {
	app      *fiber.App
	server   *httptest.Server
	provider *fakeNewBlack
	store    *repository.MemoryStore
	runner   *generation.Runner
	enqueuer *recordingEnqueuer
	videos   *service.JewelryVideoService
}

type appOptions struct {
	apiKey  string
	timeout time.Duration
}

// setupApp wires the app the way main.go does, with The New Black replaced by
// an httptest server, in-memory persistence and no Redis.
func setupApp(t *testing.T, opts appOptions) *testApp {
	t.Helper()

	provider := &fakeNewBlack{handlers: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(provider)
	t.Cleanup(srv.Close)

	log := zerolog.Nop()
	m := metrics.New()

	nb := client.NewNewBlackClient(&config.NewBlackConfig{
		APIKey:  opts.apiKey,
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, log)

	store := repository.NewMemoryStore()
	runner := generation.NewRunner(time.Second, log, m)

	execOpts := []generation.Option{
		generation.WithPollPolicy(generation.PollPolicy{
			MaxAttempts: 12,
			Delay:       5 * time.Second,
			Sleep:       func(ctx context.Context, d time.Duration) error { return ctx.Err() },
		}),
		generation.WithMetrics(m),
		generation.WithRunner(runner),
	}
	if opts.timeout > 0 {
		execOpts = append(execOpts, generation.WithTimeout(opts.timeout))
	}
	executor := generation.NewExecutor(nb, store, execOpts...)

	hub := ws.NewHub(log)
	go hub.Run()
	t.Cleanup(hub.Stop)

	enqueuer := &recordingEnqueuer{}
	videoService := service.NewJewelryVideoService(service.NewMemoryJobStore(), enqueuer)

	router := &handler.Router{
		Health:       handler.NewHealthHandler(map[string]bool{"newblack": nb.IsConfigured()}, store),
		Presentation: handler.NewPresentationHandler(service.NewPresentationService(executor), log),
		Gallery:      handler.NewGalleryHandler(service.NewGalleryService(store, store), log),
		Video:        handler.NewVideoHandler(videoService, hub, handler.NewValidator(), log),
		Upload:       handler.NewUploadHandler(service.NewUploadService(nil), log),
		Auth:         middleware.NewAuthMiddleware(auth.NewHMACVerifier(testJWTSecret), log),
		RateLimiter:  middleware.NewRateLimiter(nil, log, m),
		Limits:       config.RateLimitConfig{VideoPerHour: 10000, UploadPerHour: 10000},
		Metrics:      m,
	}

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	app.Use(middleware.RequestID())
	router.Register(app)

	return &testApp{
		app:      app,
		server:   srv,
		provider: provider,
		store:    store,
		runner:   runner,
		enqueuer: enqueuer,
		videos:   videoService,
	}
}

// rows waits for scheduled persistence and returns userID's generations
func (ta *testApp) rows(t *testing.T, userID string) []map[string]interface{} {
	t.Helper()
	ta.runner.Wait()
	rows, err := ta.store.ListGenerations(context.Background(), userID, 0)
	require.NoError(t, err)

	out := make([]map[string]interface{}, 0, len(rows))
	for _, r := range rows {
		b, _ := json.Marshal(r)
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(b, &m))
		out = append(out, m)
	}
	return out
}

// generateToken creates a Supabase-style HS256 access token for test requests.
func generateToken(t *testing.T, userID string) string {
	t.Helper()
	claims := auth.Claims{
		Email: "test@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Audience:  jwt.ClaimStrings{auth.SupabaseAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

// doRequest is a helper to perform HTTP requests against the test app.
func doRequest(app *fiber.App, method, path string, body string, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.Test(req, -1)
}

// doAuthRequest performs an authenticated request.
func doAuthRequest(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	resp, err := doRequest(app, method, path, body, map[string]string{
		"Authorization": "Bearer " + generateToken(t, testUserID),
	})
	require.NoError(t, err)
	return resp
}

// mustRequest performs an anonymous request and fails the test on transport errors.
func mustRequest(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	resp, err := doRequest(app, method, path, body, nil)
	require.NoError(t, err)
	return resp
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// parseJSON parses response body into a map.
func parseJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &result), "body: %s", body)
	return result
}

// parseJSONArray parses a response body holding a top-level array.
func parseJSONArray(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &result), "body: %s", body)
	return result
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}
