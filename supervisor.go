package wsguard

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Supervisor wraps an unreliable socket and presents a stable handle: it
// re-establishes the underlying connection when it drops unexpectedly,
// notifies observers of every lifecycle event, and gives up once the
// configured attempt cap is spent.
//
// A supervisor owns at most one live socket and at most one pending retry
// timer at any instant. Observer callbacks run synchronously with event
// handling and must not block.
type Supervisor struct {
	id        string
	target    string
	opts      *options
	factory   SocketFactory
	scheduler Scheduler
	emitter   *eventEmitter
	logger    Logger

	keepAlive *keepAliveRunner

	mu       sync.Mutex
	state    State
	socket   Socket
	attempts int
	// retryTask is non-nil while a retry timer is pending. Independent from
	// suppressed: "no timer" and "never schedule again" are separate facts.
	retryTask Task
	// suppressed is set by Close and blocks all future scheduling until a
	// caller-initiated Open.
	suppressed bool
}

// New builds a supervisor for target. No socket is created until Open.
func New(target string, opts ...Option) *Supervisor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	s := &Supervisor{
		id:        uuid.NewString(),
		target:    target,
		opts:      o,
		scheduler: o.scheduler,
		emitter:   newEventEmitter(),
	}
	s.logger = o.logger.WithField("supervisor", s.id)

	s.factory = o.factory
	if s.factory == nil {
		getter := o.targetParams
		if getter == nil {
			getter = StaticTargetParams(target)
		}
		s.factory = NewWebsocketSocketFactory(
			s.logger,
			o.dialer,
			NewTargetParamsRepo(s.logger, getter),
		)
	}

	s.registerCallbacks()

	if o.keepAliveInterval > 0 {
		s.keepAlive = newKeepAliveRunner(s.logger, o.keepAliveInterval, s.Send)
		s.emitter.On(EventOpen, func(Event) { s.keepAlive.start() })
		s.emitter.On(EventClose, func(Event) { s.keepAlive.stop() })
	}

	if o.pingReply {
		s.emitter.On(EventMessage, func(ev Event) {
			if ev.Message != nil && ev.Message.Type().IsPing() {
				if err := s.Send(NewPongMessage(ev.Message.Data())); err != nil {
					s.logger.Warnf("cannot reply to ping: %s", err)
				}
			}
		})
	}

	return s
}

// registerCallbacks wires the configuration callbacks as emitter listeners,
// so they coexist with observers attached later through On.
func (s *Supervisor) registerCallbacks() {
	o := s.opts

	if o.onOpen != nil {
		s.emitter.On(EventOpen, func(Event) { o.onOpen() })
	}
	if o.onMessage != nil {
		s.emitter.On(EventMessage, func(ev Event) { o.onMessage(ev.Message) })
	}
	if o.onReconnect != nil {
		s.emitter.On(EventReconnect, o.onReconnect)
	}
	if o.onExhausted != nil {
		s.emitter.On(EventExhausted, o.onExhausted)
	}
	if o.onClose != nil {
		s.emitter.On(EventClose, o.onClose)
	}
	if o.onError != nil {
		s.emitter.On(EventError, func(ev Event) { o.onError(ev.Err) })
	}
}

// On attaches an observer for the given event type. Any number of observers
// may listen to the same event.
func (s *Supervisor) On(t EventType, fn func(Event)) {
	s.emitter.On(t, fn)
}

// Open creates a fresh socket bound to the target and installs the event
// handlers, returning the supervisor for chaining. An existing handle is
// discarded without graceful closure. Open also lifts the suppression left
// by an earlier Close, making it the manual recovery path from both the
// closed and the exhausted states.
func (s *Supervisor) Open() *Supervisor {
	s.mu.Lock()
	s.suppressed = false
	s.state = StateConnecting
	s.socket = s.factory(s.target, s.opts.protocols, SocketEvents{
		OnOpen:    s.handleOpen,
		OnMessage: s.handleMessage,
		OnClose:   s.handleClose,
		OnError:   s.handleError,
	})
	s.mu.Unlock()

	s.logger.Debugf("opening connection to %s", s.target)

	return s
}

// Send forwards a message to the current socket. It fails with
// ErrInvalidState when Open was never called; once a socket exists, not-ready
// failures are the socket's own contract and are returned as-is.
func (s *Supervisor) Send(m Message) error {
	s.mu.Lock()
	sock := s.socket
	s.mu.Unlock()

	if sock == nil {
		return errors.Wrap(ErrInvalidState, "send")
	}

	return sock.Send(m)
}

// Close cancels any pending retry, suppresses all future reconnect
// scheduling, and requests closure of the current socket. A zero code
// defaults to the normal closure code.
func (s *Supervisor) Close(code int, reason string) error {
	if code == 0 {
		code = CloseNormalClosure
	}

	s.mu.Lock()
	s.suppressed = true
	if s.retryTask != nil {
		s.retryTask.Stop()
		s.retryTask = nil
	}
	sock := s.socket
	s.state = StateIdle
	s.mu.Unlock()

	if s.keepAlive != nil {
		s.keepAlive.stop()
	}

	s.logger.Infof("closing connection: code=%d reason=%q", code, reason)

	if sock == nil {
		return nil
	}

	return sock.Close(code, reason)
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Attempts returns the current reconnect attempt count. It resets to zero on
// every successful open.
func (s *Supervisor) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.attempts
}

func (s *Supervisor) handleOpen() {
	s.mu.Lock()
	s.state = StateOpen
	// The sole reset point: a healthy connection forgets prior failures.
	s.attempts = 0
	s.mu.Unlock()

	s.logger.Infof("connection open")

	s.emitter.Emit(Event{Type: EventOpen})
}

func (s *Supervisor) handleMessage(m Message) {
	s.emitter.Emit(Event{Type: EventMessage, Message: m})
}

func (s *Supervisor) handleClose(ev CloseEvent) {
	closeEvent := Event{Type: EventClose, Code: ev.Code, Reason: ev.Reason}

	if isExpectedCloseCode(ev.Code) {
		s.logger.Infof("connection closed: code=%d reason=%q", ev.Code, ev.Reason)
		s.mu.Lock()
		if s.state == StateOpen || s.state == StateConnecting {
			s.state = StateIdle
		}
		s.mu.Unlock()
	} else {
		s.logger.Warnf("abnormal closure: code=%d reason=%q", ev.Code, ev.Reason)
		s.reconnect(closeEvent)
	}

	// Close observers always hear about it, regardless of classification.
	s.emitter.Emit(closeEvent)
}

func (s *Supervisor) handleError(err error) {
	if errors.Is(err, ErrCannotConnect) {
		// Refused connections recover internally and never reach error
		// observers.
		s.logger.Warnf("connection refused: %s", err)
		s.reconnect(Event{Type: EventError, Err: err})
		return
	}

	s.logger.Errorf("transport error: %s", err)

	s.emitter.Emit(Event{Type: EventError, Err: err})
}

// reconnect runs the shared recovery procedure for abnormal closures and
// refused connections.
func (s *Supervisor) reconnect(cause Event) {
	s.mu.Lock()

	if s.socket != nil {
		_ = s.socket.Close(CloseNormalClosure, reasonReconnecting)
	}

	if s.suppressed {
		s.mu.Unlock()
		return
	}

	if s.retryTask != nil {
		// At most one pending retry per supervisor.
		s.mu.Unlock()
		return
	}

	s.attempts++
	attempt := s.attempts

	if s.opts.maxAttempts >= 0 && attempt > s.opts.maxAttempts {
		s.state = StateExhausted
		s.mu.Unlock()

		s.logger.Warnf("max reconnect attempts exhausted after %d retries", attempt-1)

		s.emitter.Emit(Event{
			Type:    EventExhausted,
			Attempt: attempt - 1,
			Cause:   &cause,
		})
		return
	}

	s.state = StateScheduled
	delay := s.opts.retryDelay
	s.retryTask = s.scheduler.Schedule(delay, func() {
		s.retry(cause, attempt)
	})
	s.mu.Unlock()

	s.logger.Infof("scheduling reconnect attempt %d in %s", attempt, delay)
}

func (s *Supervisor) retry(cause Event, attempt int) {
	s.mu.Lock()
	s.retryTask = nil
	if s.suppressed {
		// Close raced the timer.
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.emitter.Emit(Event{
		Type:    EventReconnect,
		Attempt: attempt,
		Cause:   &cause,
	})

	s.Open()
}
