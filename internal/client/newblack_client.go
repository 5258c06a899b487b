package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mafgems/api/internal/config"
	"github.com/rs/zerolog"
)

// ErrTimeout marks a call that did not complete before its deadline
var ErrTimeout = errors.New("request timed out")

// FormField is a single multipart field. Fields are written in slice order.
type FormField struct {
	Name  string
	Value string
}

// ProviderResponse is the raw outcome of a call that reached the provider.
// Non-2xx statuses are not errors at this layer; callers classify them.
type ProviderResponse struct {
	StatusCode  int
	Status      string
	ContentType string
	Body        []byte
}

// OK reports whether the provider answered with a 2xx status
func (r *ProviderResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusText is the reason phrase without the numeric prefix
func (r *ProviderResponse) StatusText() string {
	if text := http.StatusText(r.StatusCode); text != "" {
		return text
	}
	return strings.TrimSpace(strings.TrimPrefix(r.Status, fmt.Sprint(r.StatusCode)))
}

// NewBlackClient talks to The New Black AI workflow API
type NewBlackClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        zerolog.Logger
}

// NewNewBlackClient creates a new The New Black AI client
func NewNewBlackClient(cfg *config.NewBlackConfig, log zerolog.Logger) *NewBlackClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &NewBlackClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		log:     log,
	}
}

// IsConfigured returns true if an API key is available
func (c *NewBlackClient) IsConfigured() bool {
	return c.apiKey != ""
}

// PostForm sends a multipart form to a workflow endpoint. The key travels in
// the api_key query parameter.
func (c *NewBlackClient) PostForm(ctx context.Context, endpoint string, fields []FormField) (*ProviderResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := writer.WriteField(f.Name, f.Value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", f.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	target := fmt.Sprintf("%s/%s?api_key=%s", c.baseURL, endpoint, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.doRequest(req, endpoint)
}

// PostJSON sends a JSON body to a workflow endpoint with a bearer key
func (c *NewBlackClient) PostJSON(ctx context.Context, endpoint string, body interface{}) (*ProviderResponse, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.doRequest(req, endpoint)
}

// doRequest executes an HTTP request and captures the raw response. The URL
// is never logged because it carries the key.
func (c *NewBlackClient) doRequest(req *http.Request, endpoint string) (*ProviderResponse, error) {
	c.log.Debug().Str("endpoint", endpoint).Msgf("[The New Black API] → %s", req.Method)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(req.Context(), err) {
			c.log.Warn().Str("endpoint", endpoint).Msg("[The New Black API] ✗ timed out")
			return nil, fmt.Errorf("%w: %v", ErrTimeout, stripURL(err))
		}
		err = stripURL(err)
		c.log.Error().Str("endpoint", endpoint).Err(err).Msg("[The New Black API] ✗ request failed")
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(req.Context(), err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Int("bytes", len(respBody)).
		Msgf("[The New Black API] ← %s", req.Method)

	return &ProviderResponse{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}

// IsTimeout reports whether err came from an expired deadline
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}

// stripURL drops the request URL from transport errors since it carries the key
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
