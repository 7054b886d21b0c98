// Package logstream is the reconnecting client for the backend's log push
// channel.
//
// A Client dials a WebSocket endpoint (ws://127.0.0.1:8000/ws by default)
// and appends every received frame to a Sink as one line, in arrival
// order. Connection events add two fixed lines: ConnectedLine on open and
// ClosedLine on every close, a failed dial included.
//
// Retry policy:
//   - Linear: every reconnect waits the same RetryDelay (1s by default).
//   - Bounded: every close bumps the retry counter, and once it reaches
//     MaxRetries (10 by default) the client gives up for good. A stream
//     that never opens is dialed MaxRetries times in total.
//   - The counter resets to zero whenever a connection opens.
//
// State is explicit (see State): idle, connecting, open, closed-retrying,
// gave-up, stopped. Events are applied under one mutex and stamped with a
// connection generation, so stale events from an older channel, or any
// event after Close, are dropped.
//
// Example Usage:
//
//	client := logstream.New(logstream.DefaultConfig(), log)
//	if err := client.Start(); err != nil {
//	    return err
//	}
//	defer client.Close()
//	<-client.Done()
package logstream
