package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/schedpanel/internal/httpclient"
	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/monitoring"
)

// DefaultEndpoint is the backend's job-creation endpoint.
const DefaultEndpoint = "http://127.0.0.1:8000/run"

// SubmissionHeader carries a per-request ID so backend logs can be
// matched with panel diagnostics.
const SubmissionHeader = "X-Submission-ID"

// SubmitterConfig configures a Submitter. Nil Client, Logger and Metrics
// fall back to defaults.
type SubmitterConfig struct {
	Endpoint string
	Client   *httpclient.Client
	Logger   *zap.Logger
	Metrics  *monitoring.Metrics
}

// Submitter posts job form snapshots to the backend.
type Submitter struct {
	endpoint string
	client   *httpclient.Client
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

// NewSubmitter creates a Submitter.
func NewSubmitter(cfg SubmitterConfig) *Submitter {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Client == nil {
		cfg.Client = httpclient.NewClient(httpclient.Config{})
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Submitter{
		endpoint: cfg.Endpoint,
		client:   cfg.Client,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}
}

// Endpoint returns the URL jobs are posted to.
func (s *Submitter) Endpoint() string {
	return s.endpoint
}

// Submit issues exactly one multipart POST carrying the six fields. The
// response status and body are not inspected; only transport failures are
// returned.
func (s *Submitter) Submit(ctx context.Context, fields Fields) error {
	submissionID := uuid.NewString()

	req, err := s.client.Request(ctx)
	if err != nil {
		s.metrics.RecordSubmission("error")
		return fmt.Errorf("failed to prepare submission: %w", err)
	}

	resp, err := req.
		SetHeader(SubmissionHeader, submissionID).
		SetMultipartFormData(fields.FormData()).
		Post(s.endpoint)
	if err != nil {
		s.metrics.RecordSubmission("error")
		return fmt.Errorf("failed to submit job: %w", err)
	}

	s.metrics.RecordSubmission("sent")
	s.logger.Debug("Job submitted",
		zap.String("submission_id", submissionID),
		zap.String("endpoint", s.endpoint),
		zap.Int("status", resp.StatusCode()),
	)
	return nil
}
