package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/config"
	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/schedpanel/internal/jobs"
	"github.com/GriffinCanCode/schedpanel/internal/logstream"
	"github.com/GriffinCanCode/schedpanel/internal/panel"
	"github.com/GriffinCanCode/schedpanel/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func startServer(t *testing.T, cfg config.ServerConfig) (*Server, string, *monitoring.Metrics) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	metrics := monitoring.NewMetrics()
	srv := NewServer(cfg, nil, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() { errChan <- srv.Serve(ctx, listener) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errChan:
			assert.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Error("server did not shut down")
		}
	})
	return srv, listener.Addr().String(), metrics
}

func TestRoutes(t *testing.T) {
	srv := NewServer(config.Default().Server, nil, monitoring.NewMetrics())

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodPost, "/run", http.StatusUnprocessableEntity},
		{http.MethodGet, "/missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRunRateLimit(t *testing.T) {
	cfg := config.Default().Server
	cfg.RunRPS = 0.001
	srv := NewServer(cfg, nil, nil)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/run", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		srv.Handler().ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusUnprocessableEntity, http.StatusTooManyRequests}, codes)
}

// TestPanelRoundTrip drives the real panel against the dev backend: the
// submission is announced on the push channel and streamed back into the
// operator log.
func TestPanelRoundTrip(t *testing.T) {
	srv, addr, metrics := startServer(t, config.Default().Server)

	stream := logstream.DefaultConfig()
	stream.URL = "ws://" + addr + "/ws"
	p := panel.New(panel.Config{
		Stream:    stream,
		Submitter: jobs.NewSubmitter(jobs.SubmitterConfig{Endpoint: "http://" + addr + "/run", Metrics: metrics}),
	})
	defer p.Close()

	require.NoError(t, p.Start())
	testutil.WaitFor(t, 5*time.Second, func() bool { return p.Log().Len() == 1 })
	testutil.WaitFor(t, 5*time.Second, func() bool { return srv.Hub().ClientCount() == 1 })

	p.Submit(testutil.SampleFields(t))
	require.NoError(t, p.Drain(context.Background()))

	testutil.WaitFor(t, 5*time.Second, func() bool { return p.Log().Len() == 3 })
	lines := p.Log().Lines()
	assert.Equal(t, logstream.ConnectedLine, lines[0])
	assert.ElementsMatch(t, []string{panel.TaskStartedLine, "[INFO] Run called with URL: http://x"}, lines[1:])

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "schedpanel_server_run_requests_total 1")
	assert.Contains(t, string(body), `schedpanel_jobs_submitted_total{outcome="sent"} 1`)
}
