// Package server provides the dev backend: a local stand-in for the job
// scheduler that the control panel talks to.
//
// Routes:
//   - GET /ws: log push channel (see package ws)
//   - POST /run: accepts a job form and announces it on /ws
//   - GET /, /health: status
//   - GET /metrics: Prometheus exposition
//
// Middleware stack: recovery, request metrics, CORS for the configured
// origins, and an optional per-IP rate limit on /run.
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv := server.NewServer(cfg.Server, logger, metrics)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
