// Package middleware provides the HTTP middleware of the dev backend.
//
//   - CORS: cross-origin access for the configured panel origins
//   - RateLimit: per-IP token bucket, used on job submission
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.CORSConfigFor(cfg.Server.CORSOrigins)))
//	router.POST("/run", middleware.RateLimit(middleware.RateLimitConfig{RequestsPerSecond: 5, Burst: 10}), handler)
package middleware
