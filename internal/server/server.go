package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/schedpanel/internal/api/middleware"
	handlers "github.com/GriffinCanCode/schedpanel/internal/http"
	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/config"
	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/schedpanel/internal/ws"
)

const shutdownTimeout = 5 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	hub     *ws.Hub
	logger  *zap.Logger
	metrics *monitoring.Metrics
	addr    string
}

// NewServer creates a new server instance
func NewServer(cfg config.ServerConfig, logger *zap.Logger, metrics *monitoring.Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	hub := ws.NewHub(ws.HubConfig{Logger: logger.Named("ws"), Metrics: metrics})
	h := handlers.NewHandlers(hub, logger.Named("http"), metrics)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.CORSConfigFor(cfg.CORSOrigins)))

	// Register routes
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/metrics", monitoring.Handler(metrics.Registry()))

	// Jobs
	runLimit := middleware.RateLimitConfig{RequestsPerSecond: cfg.RunRPS, Burst: int(cfg.RunRPS) + 1}
	router.POST("/run", middleware.RateLimit(runLimit), h.Run)

	// WebSocket
	router.GET("/ws", hub.HandleConnection)

	return &Server{
		router:  router,
		hub:     hub,
		logger:  logger,
		metrics: metrics,
		addr:    net.JoinHostPort(cfg.Host, cfg.Port),
	}
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the push channel hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.Run(hubCtx)

	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(listener)
	}()

	s.logger.Info("Dev backend listening",
		zap.String("addr", listener.Addr().String()),
		zap.String("ws", "ws://"+listener.Addr().String()+"/ws"),
	)

	select {
	case <-ctx.Done():
		stopHub()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("Dev backend stopped")
		return nil
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
