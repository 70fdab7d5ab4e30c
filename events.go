package wsguard

// EventType identifies the kind of lifecycle notification a supervisor emits.
type EventType uint8

const (
	// EventOpen fires when the underlying socket reports a successful open.
	EventOpen EventType = iota
	// EventMessage fires for every inbound message, forwarded verbatim.
	EventMessage
	// EventReconnect fires when a scheduled retry kicks in, right before the
	// socket is reopened.
	EventReconnect
	// EventExhausted fires when an abnormal closure arrives and the attempt
	// cap has already been spent. The supervisor then sits idle until Open is
	// called again.
	EventExhausted
	// EventClose fires for every socket close event, expected or not.
	EventClose
	// EventError fires for transport errors that are not connection-refused.
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventOpen:
		return "open"
	case EventMessage:
		return "message"
	case EventReconnect:
		return "reconnect"
	case EventExhausted:
		return "exhausted"
	case EventClose:
		return "close"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is the payload delivered to observers. Only the fields relevant to
// its Type are populated.
type Event struct {
	Type EventType

	// Message is set for EventMessage.
	Message Message

	// Code and Reason are set for EventClose.
	Code   int
	Reason string

	// Err is set for EventError.
	Err error

	// Attempt is the retry ordinal for EventReconnect, and the number of
	// retries performed for EventExhausted.
	Attempt int

	// Cause is the close or error event that triggered a reconnect; set for
	// EventReconnect and EventExhausted.
	Cause *Event
}
