package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and
// records nothing, so components can run without instrumentation.
type Metrics struct {
	registry *prometheus.Registry

	// Log stream client metrics
	StreamDials       *prometheus.CounterVec
	StreamDisconnects prometheus.Counter
	StreamReconnects  prometheus.Counter
	StreamMessages    prometheus.Counter
	StreamState       prometheus.Gauge

	// Job submission metrics
	JobsSubmitted *prometheus.CounterVec

	// Dev server metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	WSClients       prometheus.Gauge
	RunRequests     prometheus.Counter
	Broadcasts      prometheus.Counter
}

// NewMetrics creates a metrics collector on its own registry, so several
// collectors can coexist in one process (and in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		StreamDials: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schedpanel_stream_dials_total",
				Help: "Log stream dial attempts by result",
			},
			[]string{"result"},
		),
		StreamDisconnects: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "schedpanel_stream_disconnects_total",
				Help: "Log stream close events, including failed dials",
			},
		),
		StreamReconnects: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "schedpanel_stream_reconnects_total",
				Help: "Reconnect attempts scheduled by the retry policy",
			},
		),
		StreamMessages: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "schedpanel_stream_messages_total",
				Help: "Log lines received over the stream",
			},
		),
		StreamState: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "schedpanel_stream_state",
				Help: "Current log stream state (0 idle, 1 connecting, 2 open, 3 retrying, 4 gave-up, 5 stopped)",
			},
		),

		JobsSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schedpanel_jobs_submitted_total",
				Help: "Job submissions by transport outcome",
			},
			[]string{"outcome"},
		),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schedpanel_server_http_requests_total",
				Help: "Total number of HTTP requests served by the dev backend",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "schedpanel_server_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		WSClients: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "schedpanel_server_ws_clients",
				Help: "Connected log stream subscribers",
			},
		),
		RunRequests: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "schedpanel_server_run_requests_total",
				Help: "Accepted /run submissions",
			},
		),
		Broadcasts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "schedpanel_server_broadcasts_total",
				Help: "Log lines broadcast to subscribers",
			},
		),
	}
}

// Registry returns the registry backing this collector.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// RecordDial records the result of one dial: "opened" or "failed".
func (m *Metrics) RecordDial(result string) {
	if m == nil {
		return
	}
	m.StreamDials.WithLabelValues(result).Inc()
}

// IncDisconnects increments the disconnect counter
func (m *Metrics) IncDisconnects() {
	if m == nil {
		return
	}
	m.StreamDisconnects.Inc()
}

// IncReconnects increments the scheduled reconnect counter
func (m *Metrics) IncReconnects() {
	if m == nil {
		return
	}
	m.StreamReconnects.Inc()
}

// IncMessages increments the received line counter
func (m *Metrics) IncMessages() {
	if m == nil {
		return
	}
	m.StreamMessages.Inc()
}

// SetStreamState records the numeric stream state
func (m *Metrics) SetStreamState(state int) {
	if m == nil {
		return
	}
	m.StreamState.Set(float64(state))
}

// RecordSubmission records a job submission: "sent" or "error".
func (m *Metrics) RecordSubmission(outcome string) {
	if m == nil {
		return
	}
	m.JobsSubmitted.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncWSClients increments connected subscribers
func (m *Metrics) IncWSClients() {
	if m == nil {
		return
	}
	m.WSClients.Inc()
}

// DecWSClients decrements connected subscribers
func (m *Metrics) DecWSClients() {
	if m == nil {
		return
	}
	m.WSClients.Dec()
}

// IncRunRequests increments accepted /run submissions
func (m *Metrics) IncRunRequests() {
	if m == nil {
		return
	}
	m.RunRequests.Inc()
}

// IncBroadcasts increments broadcast lines
func (m *Metrics) IncBroadcasts() {
	if m == nil {
		return
	}
	m.Broadcasts.Inc()
}
