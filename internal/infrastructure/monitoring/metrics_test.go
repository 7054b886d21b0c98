package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordDial("opened")
		m.IncDisconnects()
		m.IncReconnects()
		m.IncMessages()
		m.SetStreamState(2)
		m.RecordSubmission("sent")
		m.IncWSClients()
		m.DecWSClients()
		m.IncRunRequests()
		m.IncBroadcasts()
	})
	assert.NotNil(t, m.Registry())
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordDial("opened")
	a.RecordDial("failed")
	a.RecordDial("failed")
	a.RecordSubmission("sent")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.StreamDials.WithLabelValues("opened")))
	assert.Equal(t, 2.0, testutil.ToFloat64(a.StreamDials.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.JobsSubmitted.WithLabelValues("sent")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.StreamDials.WithLabelValues("failed")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", Handler(m.Registry()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/health", "200")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "schedpanel_server_http_requests_total")
}
