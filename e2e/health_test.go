package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseURL(t *testing.T) {
	ta := setupApp(t, appOptions{})

	resp := mustRequest(t, ta.app, http.MethodGet, "/", "")
	assertStatus(t, resp, http.StatusOK)

	body := parseJSON(t, resp)
	assert.Contains(t, body, "timestamp")
}

func TestHealth(t *testing.T) {
	ta := setupApp(t, appOptions{apiKey: "test-key"})

	resp := mustRequest(t, ta.app, http.MethodGet, "/health", "")
	assertStatus(t, resp, http.StatusOK)

	body := parseJSON(t, resp)
	assert.Equal(t, "ok", body["status"])
	services, _ := body["services"].(map[string]interface{})
	assert.Equal(t, true, services["newblack"])
	assert.Equal(t, true, services["database"])
}

func TestRequestIDHeader(t *testing.T) {
	ta := setupApp(t, appOptions{})

	resp := mustRequest(t, ta.app, http.MethodGet, "/health", "")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	resp.Body.Close()
}

func TestMetricsEndpoint(t *testing.T) {
	ta := setupApp(t, appOptions{})

	resp := mustRequest(t, ta.app, http.MethodPost, "/api/generate-presentation",
		`{"inputMethod":"text-to-image","textPrompt":"x","jewelryType":"ring"}`)
	resp.Body.Close()

	resp = mustRequest(t, ta.app, http.MethodGet, "/metrics", "")
	assertStatus(t, resp, http.StatusOK)
	assert.Contains(t, readBody(t, resp), `mafgems_generations_total{method="text-to-image",outcome="simulated"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	ta := setupApp(t, appOptions{})

	resp := mustRequest(t, ta.app, http.MethodGet, "/api/nope", "")
	assertStatus(t, resp, http.StatusNotFound)
	assert.Equal(t, "NOT_FOUND", parseJSON(t, resp)["code"])
}
