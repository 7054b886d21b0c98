package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/schedpanel/internal/jobs"
)

// DefaultCORSOrigins are the panel's local dev server origins.
var DefaultCORSOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}

// DefaultCORSConfig admits the dev origins to the stub's routes. A job
// submission preflights with its multipart Content-Type and the
// submission ID header.
func DefaultCORSConfig() cors.Config {
	return cors.Config{
		AllowOrigins:     DefaultCORSOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type", jobs.SubmissionHeader},
		AllowCredentials: true,
	}
}

// CORSConfigFor returns the default configuration restricted to origins.
// An empty list keeps the defaults.
func CORSConfigFor(origins []string) cors.Config {
	cfg := DefaultCORSConfig()
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// CORS creates the CORS middleware.
func CORS(cfg cors.Config) gin.HandlerFunc {
	return cors.New(cfg)
}
