package wsguard

type (
	// Socket is the underlying transport handle the supervisor owns. At any
	// instant a supervisor holds at most one of these.
	Socket interface {
		// Send writes a message to the wire. Implementations return
		// ErrSocketNotOpen (or their own not-ready error) when called before
		// the socket is established; the supervisor does not queue or retry.
		Send(m Message) error

		// Close requests closure with the given status code and reason.
		Close(code int, reason string) error
	}

	// SocketEvents carries the four assignable lifecycle slots the supervisor
	// installs on every socket it creates.
	SocketEvents struct {
		OnOpen    func()
		OnMessage func(m Message)
		OnClose   func(ev CloseEvent)
		OnError   func(err error)
	}

	// SocketFactory builds a socket bound to target with the given
	// subprotocols. Like a browser socket constructor it never fails
	// synchronously: establishment errors arrive through the OnError slot,
	// with ErrCannotConnect in the chain when no connection could be made.
	SocketFactory func(target string, protocols []string, events SocketEvents) Socket

	// CloseEvent is the payload of a socket close notification.
	CloseEvent struct {
		Code   int
		Reason string
	}
)

func (e SocketEvents) emitOpen() {
	if e.OnOpen != nil {
		e.OnOpen()
	}
}

func (e SocketEvents) emitMessage(m Message) {
	if e.OnMessage != nil {
		e.OnMessage(m)
	}
}

func (e SocketEvents) emitClose(ev CloseEvent) {
	if e.OnClose != nil {
		e.OnClose(ev)
	}
}

func (e SocketEvents) emitError(err error) {
	if e.OnError != nil {
		e.OnError(err)
	}
}
