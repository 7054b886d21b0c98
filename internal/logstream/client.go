package logstream

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/clock"
	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/monitoring"
)

// Lines the client appends on connection events.
const (
	ConnectedLine = "WebSocket connected"
	ClosedLine    = "WebSocket closed, retrying..."
)

// Defaults match the backend's local push endpoint.
const (
	DefaultURL        = "ws://127.0.0.1:8000/ws"
	DefaultMaxRetries = 10
	DefaultRetryDelay = time.Second
)

// ErrAlreadyStarted is returned by Start on a client that was already
// started or closed.
var ErrAlreadyStarted = errors.New("logstream: client already started")

// Sink receives log lines in order.
type Sink interface {
	Append(line string)
}

// Config configures a Client. MaxRetries bounds the dials made without an
// open in between, the first one included, so 0 and 1 both mean never
// reconnect. Start from DefaultConfig for the standard policy.
type Config struct {
	URL        string
	MaxRetries int
	RetryDelay time.Duration
	Dialer     Dialer
	Clock      clock.Clock
	Logger     *zap.Logger
	Metrics    *monitoring.Metrics
}

// DefaultConfig returns the standard endpoint and retry policy.
func DefaultConfig() Config {
	return Config{
		URL:        DefaultURL,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// Client keeps one push channel open and appends every payload to a Sink.
// After a close it reconnects with a constant delay until MaxRetries
// consecutive closes have happened without an open.
type Client struct {
	cfg    Config
	sink   Sink
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu         sync.Mutex
	state      State
	retries    int
	attempts   int
	generation uint64
	conn       Conn
	timer      *clock.Timer
}

// New creates a Client. Nothing is dialed until Start.
func New(cfg Config, sink Sink) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.Dialer == nil {
		cfg.Dialer = NewWebsocketDialer(10 * time.Second)
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		cfg:    cfg,
		sink:   sink,
		logger: cfg.Logger,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Start opens the first connection. It never blocks on the network.
func (c *Client) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return ErrAlreadyStarted
	}
	c.connectLocked()
	return nil
}

// Close tears the client down: the open channel is closed, an in-flight
// dial is abandoned and a pending reconnect is cancelled. No line is
// appended once Close returns. Safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.state == StateStopped {
		c.mu.Unlock()
		return nil
	}
	alreadyDone := c.state == StateGaveUp
	c.setStateLocked(StateStopped)
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	conn := c.conn
	c.conn = nil
	c.cancel()
	if !alreadyDone {
		close(c.done)
	}
	c.mu.Unlock()

	if conn != nil {
		return conn.Close()
	}
	return nil
}

// Done is closed once the client gives up or is closed.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Retries returns the consecutive closes since the last open.
func (c *Client) Retries() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.retries
}

// Attempts returns the total number of dials, the first one included.
func (c *Client) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// URL returns the endpoint the client dials.
func (c *Client) URL() string {
	return c.cfg.URL
}

func (c *Client) connectLocked() {
	c.timer = nil
	c.generation++
	c.attempts++
	c.setStateLocked(StateConnecting)

	c.logger.Debug("Dialing log stream",
		zap.String("url", c.cfg.URL),
		zap.Int("attempt", c.attempts),
		zap.Int("retry", c.retries),
	)
	go c.dial(c.generation)
}

func (c *Client) dial(gen uint64) {
	conn, err := c.cfg.Dialer.Dial(c.ctx, c.cfg.URL)

	c.mu.Lock()
	if c.staleLocked(gen) {
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		return
	}
	if err != nil {
		// A failed dial is an error followed by a close
		c.cfg.Metrics.RecordDial("failed")
		c.logger.Debug("Log stream dial failed", zap.String("url", c.cfg.URL), zap.Error(err))
		c.closedLocked()
		c.mu.Unlock()
		return
	}

	c.cfg.Metrics.RecordDial("opened")
	c.conn = conn
	c.retries = 0
	c.setStateLocked(StateOpen)
	c.sink.Append(ConnectedLine)
	c.logger.Info("Log stream connected", zap.String("url", c.cfg.URL), zap.Int("attempt", c.attempts))
	c.mu.Unlock()

	c.read(gen, conn)
}

func (c *Client) read(gen uint64, conn Conn) {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			c.handleReadError(gen, conn, err)
			return
		}

		c.mu.Lock()
		if c.staleLocked(gen) {
			c.mu.Unlock()
			return
		}
		c.cfg.Metrics.IncMessages()
		c.sink.Append(string(payload))
		c.mu.Unlock()
	}
}

func (c *Client) handleReadError(gen uint64, conn Conn, err error) {
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
		c.logger.Debug("Log stream error", zap.String("url", c.cfg.URL), zap.Error(err))
	}
	// Force-close so the next dial never overlaps this channel
	_ = conn.Close()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.staleLocked(gen) {
		return
	}
	c.conn = nil
	c.closedLocked()
}

// closedLocked appends the closed line and either schedules a reconnect or
// gives up.
func (c *Client) closedLocked() {
	c.cfg.Metrics.IncDisconnects()
	c.sink.Append(ClosedLine)

	c.retries++
	if c.retries >= c.cfg.MaxRetries {
		c.setStateLocked(StateGaveUp)
		c.logger.Warn("Log stream retry budget exhausted",
			zap.String("url", c.cfg.URL),
			zap.Int("max_retries", c.cfg.MaxRetries),
			zap.Int("attempts", c.attempts),
		)
		c.cancel()
		close(c.done)
		return
	}

	c.cfg.Metrics.IncReconnects()
	c.setStateLocked(StateRetrying)
	gen := c.generation
	c.timer = c.cfg.Clock.AfterFunc(c.cfg.RetryDelay, func() { c.reconnect(gen) })
}

func (c *Client) reconnect(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.staleLocked(gen) || c.state != StateRetrying {
		return
	}
	c.connectLocked()
}

// staleLocked reports whether an event from generation gen must be dropped.
func (c *Client) staleLocked(gen uint64) bool {
	return c.state == StateStopped || gen != c.generation
}

func (c *Client) setStateLocked(state State) {
	if c.state == state {
		return
	}
	c.logger.Debug("Log stream state change",
		zap.Stringer("from", c.state),
		zap.Stringer("to", state),
	)
	c.state = state
	c.cfg.Metrics.SetStreamState(int(state))
}
