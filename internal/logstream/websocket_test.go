package logstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pushServer upgrades every request and sends the queued frames, then
// closes the channel.
func pushServer(t *testing.T, frames ...string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebsocketDialerReceivesFrames(t *testing.T) {
	srv := pushServer(t, "first", "second")

	conn, err := NewWebsocketDialer(time.Second).Dial(context.Background(), wsURL(srv))
	require.NoError(t, err)
	defer conn.Close()

	_, p, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "first", string(p))

	_, p, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "second", string(p))

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}

func TestWebsocketDialerRejectedHandshake(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewWebsocketDialer(time.Second).Dial(context.Background(), wsURL(srv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestClientAgainstLiveServer(t *testing.T) {
	srv := pushServer(t, "job queued", "job done")
	sink := &recordingSink{}

	cfg := DefaultConfig()
	cfg.URL = wsURL(srv)
	cfg.MaxRetries = 0
	cfg.RetryDelay = 10 * time.Millisecond
	client := New(cfg, sink)
	defer client.Close()

	require.NoError(t, client.Start())
	waitDone(t, client)

	assert.Equal(t, []string{ConnectedLine, "job queued", "job done", ClosedLine}, sink.Lines())
	assert.Equal(t, StateGaveUp, client.State())
}

func TestClientReconnectsToLiveServer(t *testing.T) {
	srv := pushServer(t, "tick")
	sink := &recordingSink{}

	cfg := DefaultConfig()
	cfg.URL = wsURL(srv)
	cfg.MaxRetries = 2
	cfg.RetryDelay = 5 * time.Millisecond
	client := New(cfg, sink)
	defer client.Close()

	require.NoError(t, client.Start())
	// Every session opens, so the counter keeps resetting past MaxRetries
	require.Eventually(t, func() bool { return sink.count(ConnectedLine) >= 3 }, 5*time.Second, time.Millisecond)
	require.NoError(t, client.Close())

	assert.GreaterOrEqual(t, client.Attempts(), 3)
	assert.NotEqual(t, StateGaveUp, client.State())
}
