package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/schedpanel/internal/httpclient"
	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/config"
	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/logging"
	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/schedpanel/internal/jobs"
	"github.com/GriffinCanCode/schedpanel/internal/logstream"
	"github.com/GriffinCanCode/schedpanel/internal/panel"
)

type rootOptions struct {
	debug     bool
	streamURL string
	submitURL string
	preset    string
}

// app carries what every subcommand shares: flags, configuration, the
// logger and the metrics collector.
type app struct {
	opts    rootOptions
	cfg     *config.Config
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// initLogging creates the logger. An empty logFile logs to stderr.
func (a *app) initLogging(logFile string) error {
	cfg := loggingConfig(a.cfg.Logging, a.opts.debug, logFile)
	logger, err := logging.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger
	a.metrics = monitoring.NewMetrics()
	return nil
}

// loggingConfig starts from the headless defaults and applies LOG_LEVEL
// and LOG_DEV. --debug switches to the development preset. A log file
// keeps the chosen level but always writes JSON.
func loggingConfig(settings config.LogConfig, debug bool, logFile string) logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = settings.Level
	cfg.Development = settings.Development
	if debug {
		cfg = logging.DevelopmentConfig()
	}
	if logFile != "" {
		cfg = logging.FileConfig(cfg.Level, logFile)
	}
	return cfg
}

// serveMetrics exposes the collector on METRICS_ADDR until ctx ends.
func (a *app) serveMetrics(ctx context.Context) {
	addr := a.cfg.Metrics.Addr
	if addr == "" {
		return
	}
	go func() {
		if err := monitoring.Serve(ctx, addr, a.metrics.Registry()); err != nil {
			a.logger.Warn("Metrics listener failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	a.logger.Info("Serving metrics", zap.String("addr", addr))
}

// resolveFields layers the form sources: environment, then preset, then
// flags. Empty values never override.
func (a *app) resolveFields(flags jobs.Fields) (jobs.Fields, error) {
	fields := jobs.FromConfig(a.cfg.Form)
	if a.opts.preset != "" {
		preset, err := jobs.LoadPreset(a.opts.preset)
		if err != nil {
			return jobs.Fields{}, err
		}
		fields = fields.Merge(preset)
	}
	return fields.Merge(flags), nil
}

// newPanel wires a panel from the loaded configuration.
func (a *app) newPanel() *panel.Panel {
	logger := a.logger.Logger

	client := httpclient.NewClient(httpclient.Config{
		RequestsPerSecond: a.cfg.Submit.RequestsPerSecond,
	})
	submitter := jobs.NewSubmitter(jobs.SubmitterConfig{
		Endpoint: a.cfg.Submit.URL,
		Client:   client,
		Logger:   a.logger.Component("jobs"),
		Metrics:  a.metrics,
	})

	return panel.New(panel.Config{
		Stream: logstream.Config{
			URL:        a.cfg.Stream.URL,
			MaxRetries: a.cfg.Stream.MaxRetries,
			RetryDelay: a.cfg.Stream.RetryDelay,
			Dialer:     logstream.NewWebsocketDialer(a.cfg.Stream.HandshakeTimeout),
			Logger:     a.logger.Component("logstream"),
			Metrics:    a.metrics,
		},
		Submitter:     submitter,
		SubmitTimeout: a.cfg.Submit.Timeout,
		Logger:        logger,
	})
}

func (a *app) close() {
	if a.logger != nil {
		a.logger.Close()
	}
}
