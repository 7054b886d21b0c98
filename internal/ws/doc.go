// Package ws provides the dev backend's log push channel.
//
// A Hub accepts WebSocket subscribers and fans published lines out to all
// of them, in publish order, from a single broadcaster goroutine.
//
// Features:
//   - Any origin may connect (local development only)
//   - Text a subscriber sends is echoed back with EchoPrefix
//   - Subscribers that fail a write are dropped
//   - Publish never blocks; lines are dropped when the queue is full
//
// Example Usage:
//
//	hub := ws.NewHub(ws.HubConfig{Logger: logger})
//	go hub.Run(ctx)
//	router.GET("/ws", hub.HandleConnection)
//	hub.Publish("[INFO] Run called with URL: https://example.com")
package ws
