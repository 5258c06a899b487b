package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mafgems/api/internal/client"
	"github.com/mafgems/api/internal/metrics"
	"github.com/mafgems/api/internal/model"
	"github.com/rs/zerolog"
)

const (
	defaultRequestTimeout  = 120 * time.Second
	defaultResultsEndpoint = "results"

	messageNoKey      = "Simulated response (No API key found)"
	messageProcessing = "Video is still processing. Check back later."
)

// Provider is the generative API the executor dispatches to
type Provider interface {
	IsConfigured() bool
	PostForm(ctx context.Context, endpoint string, fields []client.FormField) (*client.ProviderResponse, error)
}

// Recorder persists finished generations
type Recorder interface {
	InsertGeneration(ctx context.Context, g *model.PersistedGeneration) error
}

// Executor runs a normalized request against the provider and records the
// outcome. It holds no per-request state and is safe for concurrent use.
type Executor struct {
	provider        Provider
	recorder        Recorder
	timeout         time.Duration
	poll            PollPolicy
	resultsEndpoint string
	now             func() time.Time
	log             zerolog.Logger
	metrics         *metrics.Metrics
	runner          *Runner
}

type Option func(*Executor)

func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func WithPollPolicy(p PollPolicy) Option {
	return func(e *Executor) { e.poll = p }
}

func WithResultsEndpoint(endpoint string) Option {
	return func(e *Executor) {
		if endpoint != "" {
			e.resultsEndpoint = endpoint
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

func WithLogger(log zerolog.Logger) Option {
	return func(e *Executor) { e.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Executor) { e.metrics = m }
}

// WithRunner sets the runner persistence writes are scheduled on. Callers
// that need to drain writes (shutdown, tests) keep a handle to it.
func WithRunner(r *Runner) Option {
	return func(e *Executor) { e.runner = r }
}

// NewExecutor creates an executor. recorder may be nil, in which case
// nothing is persisted.
func NewExecutor(provider Provider, recorder Recorder, opts ...Option) *Executor {
	e := &Executor{
		provider:        provider,
		recorder:        recorder,
		timeout:         defaultRequestTimeout,
		poll:            DefaultPollPolicy(),
		resultsEndpoint: defaultResultsEndpoint,
		now:             time.Now,
		log:             zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.runner == nil {
		e.runner = NewRunner(0, e.log, e.metrics)
	}
	return e
}

// Result is the caller-visible outcome of a generation that did not fail
type Result struct {
	StatusCode  int
	Success     bool
	OutputURL   string
	OutputType  model.OutputType
	InputMethod model.InputMethod
	JewelryType string
	Simulated   bool
	Message     string
	// ID is the provider job id of an unresolved two-phase generation
	ID string
	// RecordID is the id of the row scheduled for persistence, if any
	RecordID string
}

// HTTPStatus is 200 for completed generations and 202 while processing
func (r *Result) HTTPStatus() int {
	return r.StatusCode
}

func (r *Result) Response() *model.GenerationResponse {
	if !r.Success {
		return &model.GenerationResponse{
			Success: false,
			Status:  model.GenerationStatusProcessing,
			ID:      r.ID,
			Message: r.Message,
		}
	}
	return &model.GenerationResponse{
		Success:     true,
		OutputURL:   r.OutputURL,
		OutputType:  r.OutputType,
		InputMethod: r.InputMethod,
		JewelryType: r.JewelryType,
		Simulated:   r.Simulated,
		Message:     r.Message,
	}
}

// Execute dispatches n and returns a Result, or a *Error for any outcome the
// caller must see as a failure. Persistence is scheduled, never awaited.
func (e *Executor) Execute(ctx context.Context, n *Normalized) (*Result, error) {
	method := string(n.Canonical)

	if !e.provider.IsConfigured() {
		e.log.Warn().Msg("[API] THE_NEW_BLACK_API_KEY missing - using simulated response")
		e.metrics.ObserveGeneration(method, "simulated")
		return e.complete(ctx, n, PlaceholderURL(n.Canonical), n.OutputType(), true, messageNoKey), nil
	}

	e.log.Info().
		Str("endpoint", n.Endpoint).
		Str("kind", n.EndpointKind.String()).
		Msgf("[API] Calling The New Black AI: %s", n.Endpoint)

	resp, err := e.dispatch(ctx, n.Endpoint, n.Fields)
	if err != nil {
		e.metrics.ObserveGeneration(method, "network_error")
		return nil, e.networkError(err)
	}

	if !resp.OK() {
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			// 400 and 401 degrade to the placeholder output
			e.log.Warn().
				Int("status", resp.StatusCode).
				Str("endpoint", n.Endpoint).
				Str("details", errorDetails(resp)).
				Msg("[API] provider rejected request - using simulated response")
			e.metrics.ObserveGeneration(method, "simulated")
			msg := fmt.Sprintf("Simulated response (provider returned %d)", resp.StatusCode)
			return e.complete(ctx, n, PlaceholderURL(n.Canonical), n.OutputType(), true, msg), nil
		}

		details := errorDetails(resp)
		e.log.Error().
			Int("status", resp.StatusCode).
			Str("details", details).
			Msg("[The New Black API Error]")
		e.metrics.ObserveGeneration(method, "provider_error")
		return nil, &Error{
			Kind:       KindProvider,
			StatusCode: resp.StatusCode,
			Code:       CodeProviderError,
			Message:    ProviderMessage(resp.StatusCode, resp.StatusText()),
			Details:    details,
		}
	}

	var body interface{}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		e.log.Error().Err(err).Msg("[API] failed to parse provider response")
		e.metrics.ObserveGeneration(method, "bad_response")
		return nil, shapeError(CodeBadGateway, "Failed to parse API response", err)
	}

	if n.EndpointKind == TwoPhaseEndpoint {
		return e.pollForResult(ctx, n, body)
	}

	outputURL := firstString(body, "output_url", "image_url", "video_url", "model_url", "url")
	if outputURL == "" {
		e.log.Error().RawJSON("body", compactJSON(resp.Body)).Msg("[API] response missing output URL")
		e.metrics.ObserveGeneration(method, "bad_response")
		return nil, shapeError(CodeMissingOutputURL, "API returned invalid response: missing output URL", nil)
	}

	e.log.Info().Msgf("[API Success] Generated %s for jewelry type: %s", n.OutputType(), n.JewelryType)
	e.metrics.ObserveGeneration(method, "success")
	return e.complete(ctx, n, outputURL, n.OutputType(), false, ""), nil
}

func (e *Executor) pollForResult(ctx context.Context, n *Normalized, initial interface{}) (*Result, error) {
	method := string(n.Canonical)

	id := ExtractID(initial)
	if id == "" {
		e.log.Error().Msg("[API] ai-video response missing generation id")
		e.metrics.ObserveGeneration(method, "bad_response")
		return nil, shapeError(CodeMissingID, "API returned invalid response: missing generation id", nil)
	}

	e.log.Info().Str("id", id).Msg("[API] ai-video submitted, polling for result")

	var videoURL string
	attempts, ok := e.poll.Run(ctx, func(ctx context.Context, attempt int) bool {
		resp, err := e.dispatch(ctx, e.resultsEndpoint, []client.FormField{{Name: "id", Value: id}})
		if err != nil {
			e.log.Debug().Err(err).Int("attempt", attempt).Msg("[API] poll request failed")
			return false
		}
		if !resp.OK() {
			e.log.Debug().Int("status", resp.StatusCode).Int("attempt", attempt).Msg("[API] poll not ready")
			return false
		}
		videoURL = ExtractPollURL(resp.Body)
		return videoURL != ""
	})
	e.metrics.ObservePoll(attempts, ok)

	if !ok {
		e.log.Info().Str("id", id).Int("attempts", attempts).Msg("[API] ai-video still processing")
		e.metrics.ObserveGeneration(method, "processing")
		return &Result{
			StatusCode:  http.StatusAccepted,
			Success:     false,
			InputMethod: n.Request.InputMethod,
			JewelryType: n.JewelryType,
			ID:          id,
			Message:     messageProcessing,
		}, nil
	}

	e.log.Info().Str("id", id).Int("attempts", attempts).Msg("[API Success] ai-video ready")
	e.metrics.ObserveGeneration(method, "success")
	return e.complete(ctx, n, videoURL, model.OutputTypeVideo, false, ""), nil
}

// dispatch performs one provider call under the request timeout
func (e *Executor) dispatch(ctx context.Context, endpoint string, fields []client.FormField) (*client.ProviderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	resp, err := e.provider.PostForm(ctx, endpoint, fields)
	if err != nil {
		e.metrics.ObserveProviderRequest(endpoint, 0, time.Since(start))
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !client.IsTimeout(err) {
			err = fmt.Errorf("%w: %v", client.ErrTimeout, err)
		}
		return nil, err
	}
	e.metrics.ObserveProviderRequest(endpoint, resp.StatusCode, time.Since(start))
	return resp, nil
}

func (e *Executor) networkError(err error) *Error {
	if client.IsTimeout(err) {
		return &Error{
			Kind:       KindNetwork,
			StatusCode: http.StatusGatewayTimeout,
			Code:       CodeTimeout,
			Message:    "Request timeout: The New Black AI took too long to respond. Please try again.",
			Err:        err,
		}
	}
	e.log.Error().Err(err).Msg("[Network Error]")
	return &Error{
		Kind:       KindNetwork,
		StatusCode: http.StatusServiceUnavailable,
		Code:       CodeNetworkError,
		Message:    "Network error: " + err.Error(),
		Err:        err,
	}
}

// complete builds the 200 result and schedules persistence when the request
// names a user
func (e *Executor) complete(ctx context.Context, n *Normalized, outputURL string, outputType model.OutputType, simulated bool, message string) *Result {
	res := &Result{
		StatusCode:  http.StatusOK,
		Success:     true,
		OutputURL:   outputURL,
		OutputType:  outputType,
		InputMethod: n.Request.InputMethod,
		JewelryType: n.JewelryType,
		Simulated:   simulated,
		Message:     message,
	}

	userID := strings.TrimSpace(n.Request.UserID)
	if userID == "" || e.recorder == nil {
		return res
	}

	configuration, err := json.Marshal(n.Request)
	if err != nil {
		e.log.Warn().Err(err).Msg("[Database Save Error] could not serialize configuration")
		return res
	}

	row := &model.PersistedGeneration{
		ID:            uuid.New().String(),
		UserID:        userID,
		InputMethod:   n.Canonical,
		JewelryType:   n.JewelryType,
		OutputURL:     outputURL,
		OutputType:    outputType,
		Configuration: string(configuration),
		Status:        model.GenerationStatusCompleted,
		CreatedAt:     e.now().UTC(),
	}
	res.RecordID = row.ID

	e.runner.Go(ctx, "persist_generation", func(ctx context.Context) error {
		return e.recorder.InsertGeneration(ctx, row)
	})

	return res
}

// errorDetails renders a non-OK provider body for diagnostics
func errorDetails(resp *client.ProviderResponse) string {
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.StatusText())
	}
	if strings.Contains(resp.ContentType, "application/json") {
		var buf bytes.Buffer
		if err := json.Compact(&buf, resp.Body); err == nil {
			return buf.String()
		}
	}
	return string(resp.Body)
}

func compactJSON(b []byte) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return []byte("null")
	}
	return buf.Bytes()
}

// firstString returns the first non-empty string among keys of an object
func firstString(v interface{}, keys ...string) string {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// ExtractID reads the two-phase job id: an "id" field (string or number),
// or the body itself when it is a bare string
func ExtractID(v interface{}) string {
	switch t := v.(type) {
	case map[string]interface{}:
		switch id := t["id"].(type) {
		case string:
			return strings.TrimSpace(id)
		case float64:
			return strconv.FormatFloat(id, 'f', -1, 64)
		}
	case string:
		return strings.TrimSpace(t)
	}
	return ""
}

// ExtractPollURL reads a finished result from a poll body. Accepted shapes:
// an object with output_url, video_url, url or result (a string or an array
// whose first element is a string), a top-level array, or a bare URL string.
func ExtractPollURL(body []byte) string {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case map[string]interface{}:
		for _, k := range []string{"output_url", "video_url", "url", "result"} {
			if s := stringOrFirst(t[k]); s != "" {
				return s
			}
		}
	case []interface{}:
		return stringOrFirst(t)
	case string:
		if strings.HasPrefix(t, "http") {
			return t
		}
	}
	return ""
}

func stringOrFirst(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []interface{}:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
