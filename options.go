package wsguard

import (
	"time"

	"github.com/fasthttp/websocket"
)

const (
	defaultRetryDelay = time.Second

	// unboundedAttempts is the resolved cap when WithMaxAttempts was never
	// used: reconnect forever.
	unboundedAttempts = -1
)

type options struct {
	protocols  []string
	retryDelay time.Duration
	// maxAttempts is the attempt cap; negative means unbounded. An explicit
	// zero exhausts on the first abnormal closure.
	maxAttempts int

	keepAliveInterval time.Duration
	pingReply         bool

	logger       Logger
	scheduler    Scheduler
	factory      SocketFactory
	dialer       *websocket.Dialer
	targetParams TargetParamsGetter

	onOpen      func()
	onMessage   func(m Message)
	onReconnect func(ev Event)
	onExhausted func(ev Event)
	onClose     func(ev Event)
	onError     func(err error)
}

func defaultOptions() *options {
	return &options{
		retryDelay:  defaultRetryDelay,
		maxAttempts: unboundedAttempts,
		logger:      NoopLogger(),
		scheduler:   NewTimeScheduler(),
		dialer:      websocket.DefaultDialer,
	}
}

// Option configures a supervisor at construction time.
type Option func(*options)

// WithProtocols sets the subprotocols offered on every dial.
func WithProtocols(protocols ...string) Option {
	return func(o *options) {
		o.protocols = protocols
	}
}

// WithRetryDelay sets the fixed delay between an abnormal closure and the
// next attempt. Every retry waits the same delay; zero or negative values
// fall back to the one second default.
func WithRetryDelay(d time.Duration) Option {
	return func(o *options) {
		if d <= 0 {
			d = defaultRetryDelay
		}
		o.retryDelay = d
	}
}

// WithMaxAttempts caps consecutive reconnect attempts. Zero means no retry
// at all: the first abnormal closure exhausts the supervisor. Negative
// restores the unbounded default.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = unboundedAttempts
		}
		o.maxAttempts = n
	}
}

// WithKeepAlive makes the supervisor send a ping over the current socket at
// the given cadence while the connection is open.
func WithKeepAlive(interval time.Duration) Option {
	return func(o *options) {
		o.keepAliveInterval = interval
	}
}

// WithPingReply makes the supervisor answer inbound pings with pongs.
func WithPingReply() Option {
	return func(o *options) {
		o.pingReply = true
	}
}

func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithScheduler replaces the wall-clock retry scheduler. Tests use this to
// fire retries deterministically.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithSocketFactory replaces the websocket-backed transport.
func WithSocketFactory(f SocketFactory) Option {
	return func(o *options) {
		o.factory = f
	}
}

// WithDialer sets the dialer the default websocket transport uses.
func WithDialer(d *websocket.Dialer) Option {
	return func(o *options) {
		o.dialer = d
	}
}

// WithTargetParams installs a getter consulted before every dial, letting
// reconnects resolve a fresh URL and headers.
func WithTargetParams(getter TargetParamsGetter) Option {
	return func(o *options) {
		o.targetParams = getter
	}
}

// WithOnOpen registers a callback for successful opens.
func WithOnOpen(fn func()) Option {
	return func(o *options) {
		o.onOpen = fn
	}
}

// WithOnMessage registers a callback for inbound messages.
func WithOnMessage(fn func(m Message)) Option {
	return func(o *options) {
		o.onMessage = fn
	}
}

// WithOnReconnect registers a callback invoked when a scheduled retry fires,
// with the close or error event that triggered it.
func WithOnReconnect(fn func(ev Event)) Option {
	return func(o *options) {
		o.onReconnect = fn
	}
}

// WithOnMaxAttemptsExhausted registers a callback for the terminal
// out-of-attempts notification.
func WithOnMaxAttemptsExhausted(fn func(ev Event)) Option {
	return func(o *options) {
		o.onExhausted = fn
	}
}

// WithOnClose registers a callback invoked for every close event, expected
// or not.
func WithOnClose(fn func(ev Event)) Option {
	return func(o *options) {
		o.onClose = fn
	}
}

// WithOnError registers a callback for transport errors that do not trigger
// reconnection.
func WithOnError(fn func(err error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}
