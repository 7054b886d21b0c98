package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/monitoring"
)

// EchoPrefix is prepended to text a subscriber sends.
const EchoPrefix = "Echo: "

const (
	defaultQueueSize = 256
	writeWait        = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// HubConfig configures a Hub. Nil Logger and Metrics are allowed.
type HubConfig struct {
	QueueSize int
	Logger    *zap.Logger
	Metrics   *monitoring.Metrics
}

// Hub fans published log lines out to every connected subscriber.
type Hub struct {
	queue   chan string
	logger  *zap.Logger
	metrics *monitoring.Metrics

	mu      sync.Mutex
	clients map[*subscriber]struct{}
}

// subscriber serializes writes from the broadcaster and the echo path.
type subscriber struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (s *subscriber) write(line string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

// NewHub creates a hub. Lines are only delivered while Run is active.
func NewHub(cfg HubConfig) *Hub {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Hub{
		queue:   make(chan string, cfg.QueueSize),
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		clients: make(map[*subscriber]struct{}),
	}
}

// Publish enqueues a line for broadcast. It reports false when the queue
// is full and the line was dropped.
func (h *Hub) Publish(line string) bool {
	select {
	case h.queue <- line:
		return true
	default:
		h.logger.Warn("Broadcast queue full, dropping line", zap.String("line", line))
		return false
	}
}

// Run drains the queue until ctx is cancelled, then disconnects every
// subscriber.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case line := <-h.queue:
			h.broadcast(line)
		}
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HandleConnection upgrades the request and serves one subscriber until
// it disconnects.
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	sub := &subscriber{conn: conn}
	h.register(sub)
	defer h.unregister(sub)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
		if err := sub.write(EchoPrefix + string(data)); err != nil {
			h.logger.Debug("WebSocket echo failed", zap.Error(err))
			return
		}
	}
}

func (h *Hub) broadcast(line string) {
	h.mu.Lock()
	targets := make([]*subscriber, 0, len(h.clients))
	for sub := range h.clients {
		targets = append(targets, sub)
	}
	h.mu.Unlock()

	h.metrics.IncBroadcasts()
	for _, sub := range targets {
		if err := sub.write(line); err != nil {
			h.logger.Debug("Dropping subscriber after failed write", zap.Error(err))
			h.unregister(sub)
		}
	}
}

func (h *Hub) register(sub *subscriber) {
	h.mu.Lock()
	h.clients[sub] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.metrics.IncWSClients()
	h.logger.Info("Subscriber connected", zap.Int("clients", count))
}

// unregister removes and closes sub. Only the first call for a subscriber
// has any effect.
func (h *Hub) unregister(sub *subscriber) {
	h.mu.Lock()
	if _, ok := h.clients[sub]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, sub)
	count := len(h.clients)
	h.mu.Unlock()

	_ = sub.conn.Close()
	h.metrics.DecWSClients()
	h.logger.Info("Subscriber disconnected", zap.Int("clients", count))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	targets := make([]*subscriber, 0, len(h.clients))
	for sub := range h.clients {
		targets = append(targets, sub)
	}
	h.mu.Unlock()

	for _, sub := range targets {
		sub.writeMu.Lock()
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		_ = sub.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		sub.writeMu.Unlock()
		h.unregister(sub)
	}
}
