package wsguard

// State is the supervisor's current position in the connection lifecycle.
type State uint8

const (
	// StateIdle indicates no socket activity: either the supervisor was never
	// opened, or the connection ended with an expected close code.
	StateIdle State = iota
	// StateConnecting indicates a socket has been created and its open event
	// has not arrived yet.
	StateConnecting
	// StateOpen indicates the current socket reported a successful open.
	StateOpen
	// StateScheduled indicates a reconnect timer is pending.
	StateScheduled
	// StateExhausted indicates the attempt cap was reached. Only a
	// caller-initiated Open recovers from here.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateScheduled:
		return "scheduled"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}
