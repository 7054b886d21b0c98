// Package logging provides structured logging using uber/zap.
//
// This package offers two output modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Diagnostics never share stdout with the operator log. Headless commands
// write them to stderr; the TUI writes them to a file (see FileConfig).
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//	logger.Component("logstream").Info("dialing", zap.String("url", url))
package logging
