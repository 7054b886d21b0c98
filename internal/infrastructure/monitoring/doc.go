/*
Package monitoring provides Prometheus metrics for the panel and the dev
backend.

# Overview

Each Metrics value owns a private registry, so the stream client, the
submitter and the dev server can be instrumented independently and tests
can assert on counters without touching the global registry. A nil
*Metrics is accepted everywhere and records nothing.

# Usage

	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", monitoring.Handler(metrics.Registry()))

	// Or expose a standalone listener
	go monitoring.Serve(ctx, ":9100", metrics.Registry())
*/
package monitoring
