package logstream

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is one push channel. ReadMessage blocks until a payload arrives or
// the channel fails; Close may be called from another goroutine to
// unblock it.
type Conn interface {
	ReadMessage() (messageType int, payload []byte, err error)
	Close() error
}

// Dialer opens push channels.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// closeGrace bounds how long Close waits to hand the close frame to the
// network before dropping the socket.
const closeGrace = time.Second

// WebsocketDialer dials with gorilla/websocket.
type WebsocketDialer struct {
	Dialer *websocket.Dialer
}

// NewWebsocketDialer returns a dialer with the given handshake timeout.
func NewWebsocketDialer(handshakeTimeout time.Duration) *WebsocketDialer {
	return &WebsocketDialer{Dialer: &websocket.Dialer{
		Proxy:            websocket.DefaultDialer.Proxy,
		HandshakeTimeout: handshakeTimeout,
	}}
}

// Dial implements Dialer.
func (d *WebsocketDialer) Dial(ctx context.Context, url string) (Conn, error) {
	dialer := d.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket handshake failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}
	return &wsConn{Conn: conn}, nil
}

// wsConn sends a close frame before tearing down the socket.
type wsConn struct {
	*websocket.Conn
}

func (c *wsConn) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.Conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGrace))
	return c.Conn.Close()
}
