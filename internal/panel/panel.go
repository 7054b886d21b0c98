package panel

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/schedpanel/internal/jobs"
	"github.com/GriffinCanCode/schedpanel/internal/logstream"
)

// TaskStartedLine is appended once per submission.
const TaskStartedLine = "Task started..."

// Submitter sends one job form snapshot to the backend.
type Submitter interface {
	Submit(ctx context.Context, fields jobs.Fields) error
}

// Config wires a Panel.
type Config struct {
	Stream        logstream.Config
	Submitter     Submitter
	SubmitTimeout time.Duration // zero means no deadline
	Logger        *zap.Logger
}

// Panel ties the operator log to the log stream client and job submission.
type Panel struct {
	log       *Log
	stream    *logstream.Client
	submitter Submitter
	timeout   time.Duration
	logger    *zap.Logger

	wg sync.WaitGroup
}

// New creates a panel with an empty log. The stream is not dialed until
// Start.
func New(cfg Config) *Panel {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Submitter == nil {
		cfg.Submitter = jobs.NewSubmitter(jobs.SubmitterConfig{Logger: logger.Named("jobs")})
	}
	if cfg.Stream.Logger == nil {
		cfg.Stream.Logger = logger.Named("logstream")
	}

	log := NewLog()
	return &Panel{
		log:       log,
		stream:    logstream.New(cfg.Stream, log),
		submitter: cfg.Submitter,
		timeout:   cfg.SubmitTimeout,
		logger:    logger.Named("panel"),
	}
}

// Log returns the operator log.
func (p *Panel) Log() *Log {
	return p.log
}

// Stream returns the log stream client.
func (p *Panel) Stream() *logstream.Client {
	return p.stream
}

// Start opens the log stream.
func (p *Panel) Start() error {
	return p.stream.Start()
}

// Submit fires one submission for a snapshot of fields. TaskStartedLine is
// appended once the submission goroutine is running and about to call the
// Submitter. It never waits for the request to complete. Failures are only logged as
// diagnostics.
func (p *Panel) Submit(fields jobs.Fields) {
	issued := make(chan struct{})

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ctx := context.Background()
		if p.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}

		close(issued)
		if err := p.submitter.Submit(ctx, fields); err != nil {
			p.logger.Warn("Job submission failed", zap.String("url", fields.URL), zap.Error(err))
		}
	}()

	<-issued
	p.log.Append(TaskStartedLine)
}

// Drain waits for in-flight submissions to finish or ctx to end.
func (p *Panel) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close tears down the log stream. In-flight submissions are left to
// finish on their own.
func (p *Panel) Close() error {
	return p.stream.Close()
}
