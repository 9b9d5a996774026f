package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuscan/cli/internal/logger"
)

func TestStatusEndpoint(t *testing.T) {
	s := NewServer("127.0.0.1:0", &logger.StdoutLogger{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	s.Publish(Status{
		State:       "idle",
		Framework:   "express",
		TotalRoutes: 12,
		Modules:     3,
		Runs:        2,
		LastRun:     time.Now().UTC(),
	})

	resp, err := http.Get(ts.URL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "express", got.Framework)
	assert.Equal(t, 12, got.TotalRoutes)
	assert.Equal(t, 2, got.Runs)
}

func TestWebsocketReceivesUpdates(t *testing.T) {
	s := NewServer("127.0.0.1:0", &logger.StdoutLogger{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// the current snapshot arrives on connect
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, first, err := conn.ReadMessage()
	require.NoError(t, err)

	var initial Status
	require.NoError(t, json.Unmarshal(first, &initial))
	assert.Equal(t, "idle", initial.State)

	s.Publish(Status{State: "analyzing", Runs: 1})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, second, err := conn.ReadMessage()
	require.NoError(t, err)

	var updated Status
	require.NoError(t, json.Unmarshal(second, &updated))
	assert.Equal(t, "analyzing", updated.State)
	assert.Equal(t, 1, updated.Runs)
}

func TestIndexServed(t *testing.T) {
	s := NewServer("127.0.0.1:0", &logger.StdoutLogger{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	missing, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}
