package panel

import (
	"strings"
	"sync"
)

// Log is the append-only operator log. It is safe for concurrent use.
type Log struct {
	mu     sync.RWMutex
	lines  []string
	notify chan struct{}
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{notify: make(chan struct{}, 1)}
}

// Append adds one line. Observers waiting on Updated are woken; bursts of
// appends coalesce into a single signal and Append never blocks.
func (l *Log) Append(line string) {
	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// Lines returns a copy of every line in insertion order.
func (l *Log) Lines() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.lines...)
}

// Since returns the lines appended after the first n.
func (l *Log) Since(n int) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n >= len(l.lines) {
		return nil
	}
	return append([]string(nil), l.lines[n:]...)
}

// Len returns the number of lines.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.lines)
}

// String renders the log newline-joined.
func (l *Log) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return strings.Join(l.lines, "\n")
}

// Updated fires after one or more appends.
func (l *Log) Updated() <-chan struct{} {
	return l.notify
}
