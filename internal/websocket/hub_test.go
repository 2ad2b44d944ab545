package websocket

import (
	"testing"
	"time"

	"ai-homework-helper-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quietLogger struct{}

func (quietLogger) Debug(string, string, map[string]interface{}) {}
func (quietLogger) Info(string, string, map[string]interface{})  {}
func (quietLogger) Warn(string, string, map[string]interface{})  {}
func (quietLogger) Error(string, string, map[string]interface{}) {}
func (quietLogger) Sync() error                                  { return nil }

func (h *Hub) watcherCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func TestSlowWatcherIsReapedWithoutKillingHub(t *testing.T) {
	hub := NewHub(nil, quietLogger{})
	go hub.Run()

	stuck := &Client{Hub: hub, SessionID: "session-1", Send: make(chan []byte)}
	healthy := &Client{Hub: hub, SessionID: "session-1", Send: make(chan []byte, 4)}
	hub.register <- stuck
	hub.register <- healthy
	require.Eventually(t, func() bool {
		return hub.watcherCount("session-1") == 2
	}, time.Second, 5*time.Millisecond)

	// The stuck watcher never drains Send, so the publish drops it while
	// the healthy one still receives the draft.
	hub.PublishStreamState("session-1", dto.StreamStateResponse{SessionId: "session-1", Content: "2x"})

	require.Eventually(t, func() bool {
		return hub.watcherCount("session-1") == 1
	}, time.Second, 5*time.Millisecond)

	select {
	case data := <-healthy.Send:
		assert.Contains(t, string(data), "stream_state")
	case <-time.After(time.Second):
		t.Fatal("healthy watcher received nothing")
	}

	// Send is closed exactly once, by the reaper.
	select {
	case _, open := <-stuck.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("stuck watcher's Send was never closed")
	}

	// A second publish after the reap must not panic the hub goroutine.
	hub.PublishStreamState("session-1", dto.StreamStateResponse{SessionId: "session-1", Content: "2x + 3"})
	require.Eventually(t, func() bool {
		return len(healthy.Send) == 1
	}, time.Second, 5*time.Millisecond)
}
