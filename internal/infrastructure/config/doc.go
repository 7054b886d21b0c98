// Package config provides 12-factor configuration management for schedpanel.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Form: initial job form values (URL, target time, keywords, browser paths)
//   - Stream: log stream endpoint and linear retry policy
//   - Submit: job submission endpoint, timeout and rate limit
//   - Server: dev backend listener and CORS origins
//   - Logging: Log level and output format
//   - Metrics: optional Prometheus listener
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("streaming from %s\n", cfg.Stream.URL)
//
// Environment Variables:
//   - TARGETURL, TARGETTIME, KEYWORDS, CHROMEPATH, DATADIR, PROFILENAME
//   - STREAM_URL, STREAM_MAX_RETRIES, STREAM_RETRY_DELAY, STREAM_HANDSHAKE_TIMEOUT
//   - SUBMIT_URL, SUBMIT_TIMEOUT, SUBMIT_RPS
//   - HOST, PORT, CORS_ORIGINS
//   - LOG_LEVEL, LOG_DEV, METRICS_ADDR
package config
