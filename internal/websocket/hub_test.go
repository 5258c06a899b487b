package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mafgems/api/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(zerolog.Nop())
	go h.Run()
	t.Cleanup(h.Stop)
	return h
}

func receive(t *testing.T, c *Client) map[string]interface{} {
	t.Helper()
	select {
	case data := <-c.Send:
		var frame map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &frame))
		return frame
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return nil
	}
}

func TestHub_BroadcastsToJobSubscribersOnly(t *testing.T) {
	h := startHub(t)

	a := &Client{JobID: "job-a", Send: make(chan []byte, 4)}
	b := &Client{JobID: "job-b", Send: make(chan []byte, 4)}
	h.Register(a)
	h.Register(b)
	require.Eventually(t, func() bool { return h.Subscribers("job-a") == 1 && h.Subscribers("job-b") == 1 }, time.Second, 5*time.Millisecond)

	h.BroadcastProgress("job-a", 40, model.JobStatusRunning, "Waiting for video render...")
	h.BroadcastComplete("job-a", &model.JewelryVideoResult{VideoURL: "https://x/v.mp4"})

	progress := receive(t, a)
	assert.Equal(t, "progress", progress["type"])
	assert.Equal(t, 40.0, progress["progress"])

	complete := receive(t, a)
	assert.Equal(t, "complete", complete["type"])
	assert.Equal(t, "https://x/v.mp4", complete["result"].(map[string]interface{})["videoUrl"])

	assert.Empty(t, b.Send)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := startHub(t)

	c := &Client{JobID: "job-a", Send: make(chan []byte, 1)}
	h.Register(c)
	h.Unregister(c)

	require.Eventually(t, func() bool { return h.Subscribers("job-a") == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestHub_ErrorFrame(t *testing.T) {
	h := startHub(t)

	c := &Client{JobID: "job-a", Send: make(chan []byte, 1)}
	h.Register(c)
	require.Eventually(t, func() bool { return h.Subscribers("job-a") == 1 }, time.Second, 5*time.Millisecond)

	h.BroadcastError("job-a", "VIDEO_FAILED", "boom")

	frame := receive(t, c)
	assert.Equal(t, "error", frame["type"])
	assert.Equal(t, "VIDEO_FAILED", frame["error"].(map[string]interface{})["code"])
}
