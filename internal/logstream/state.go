package logstream

// State is the connection state of a Client.
type State int

const (
	// StateIdle is the state before Start.
	StateIdle State = iota
	// StateConnecting means a dial is in flight.
	StateConnecting
	// StateOpen means the channel is live.
	StateOpen
	// StateRetrying means the channel closed and a reconnect is scheduled.
	StateRetrying
	// StateGaveUp means the retry budget is exhausted. Terminal.
	StateGaveUp
	// StateStopped means Close was called. Terminal.
	StateStopped
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateRetrying:
		return "closed-retrying"
	case StateGaveUp:
		return "gave-up"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Terminal reports whether the client will never connect again.
func (s State) Terminal() bool {
	return s == StateGaveUp || s == StateStopped
}
