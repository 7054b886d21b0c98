package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/monitoring"
)

var sampleFields = Fields{
	URL:            "http://x",
	TargetTime:     "2025-01-01 00:00:00",
	ButtonKeywords: "ok,go",
	ChromePath:     "/usr/bin/chromedriver",
	UserDataDir:    "/tmp/d",
	ProfileName:    "p1",
}

type capture struct {
	mu       sync.Mutex
	requests []*http.Request
	forms    []map[string]string
}

func (c *capture) handler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := map[string]string{}
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			for k, v := range r.MultipartForm.Value {
				form[k] = v[0]
			}
		}
		c.mu.Lock()
		c.requests = append(c.requests, r)
		c.forms = append(c.forms, form)
		c.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"status":"started"}`))
	}
}

func (c *capture) snapshot() ([]*http.Request, []map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*http.Request(nil), c.requests...), append([]map[string]string(nil), c.forms...)
}

func TestSubmitSendsSixFieldsOnce(t *testing.T) {
	var c capture
	srv := httptest.NewServer(c.handler(http.StatusOK))
	defer srv.Close()

	metrics := monitoring.NewMetrics()
	s := NewSubmitter(SubmitterConfig{Endpoint: srv.URL + "/run", Metrics: metrics})

	require.NoError(t, s.Submit(context.Background(), sampleFields))

	requests, forms := c.snapshot()
	require.Len(t, requests, 1)
	req := requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/run", req.URL.Path)
	assert.Contains(t, req.Header.Get("Content-Type"), "multipart/form-data")
	assert.NotEmpty(t, req.Header.Get(SubmissionHeader))

	assert.Equal(t, map[string]string{
		"url":             "http://x",
		"target_time":     "2025-01-01 00:00:00",
		"button_keywords": "ok,go",
		"chrome_path":     "/usr/bin/chromedriver",
		"user_data_dir":   "/tmp/d",
		"profile_name":    "p1",
	}, forms[0])

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.JobsSubmitted.WithLabelValues("sent")))
}

func TestSubmitIgnoresResponseStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"accepted", http.StatusOK},
		{"validation error", http.StatusUnprocessableEntity},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c capture
			srv := httptest.NewServer(c.handler(tt.status))
			defer srv.Close()

			s := NewSubmitter(SubmitterConfig{Endpoint: srv.URL})
			assert.NoError(t, s.Submit(context.Background(), sampleFields))
			requests, _ := c.snapshot()
			assert.Len(t, requests, 1, "no retry regardless of status")
		})
	}
}

func TestSubmitReturnsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	metrics := monitoring.NewMetrics()
	s := NewSubmitter(SubmitterConfig{Endpoint: endpoint, Metrics: metrics})

	err := s.Submit(context.Background(), sampleFields)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to submit job")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.JobsSubmitted.WithLabelValues("error")))
}

func TestNewSubmitterDefaults(t *testing.T) {
	s := NewSubmitter(SubmitterConfig{})
	assert.Equal(t, DefaultEndpoint, s.Endpoint())
}
