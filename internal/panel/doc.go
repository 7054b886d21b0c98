// Package panel holds the operator log and the controller the TUI and CLI
// drive: one log stream client feeding the log, plus fire-and-forget job
// submission that acknowledges with TaskStartedLine.
package panel
