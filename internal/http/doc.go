// Package http provides the HTTP handlers of the dev backend.
//
// Endpoints:
//   - Health: / and /health
//   - Jobs: POST /run (multipart or urlencoded form)
//
// /run answers 422 when a required field is missing, otherwise it
// publishes RunCalledLine to the push channel and returns
// {"status":"started","job_id":"<uuid>"}.
//
// Example Usage:
//
//	handlers := http.NewHandlers(hub, logger, metrics)
//	router.GET("/health", handlers.Health)
//	router.POST("/run", handlers.Run)
package http
