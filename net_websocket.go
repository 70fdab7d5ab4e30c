package wsguard

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/pkg/errors"
)

const writeWait = time.Second

// wsSocket is the production Socket backed by a fasthttp websocket
// connection. Construction returns immediately; the dial runs in its own
// goroutine and reports through the event slots, browser-style.
type wsSocket struct {
	logger    Logger
	dialer    *websocket.Dialer
	repo      TargetParamsRepo
	target    string
	protocols []string
	events    SocketEvents

	mu          sync.Mutex
	writeMu     sync.Mutex
	conn        *websocket.Conn
	closed      bool
	closeCode   int
	closeReason string

	closeEventOnce sync.Once
}

// NewWebsocketSocketFactory builds sockets that dial the target resolved by
// repo, offering the supervisor's subprotocols.
func NewWebsocketSocketFactory(
	logger Logger,
	dialer *websocket.Dialer,
	repo TargetParamsRepo,
) SocketFactory {
	return func(target string, protocols []string, events SocketEvents) Socket {
		w := &wsSocket{
			logger:    logger.WithField("net", "ws_socket"),
			dialer:    dialer,
			repo:      repo,
			target:    target,
			protocols: protocols,
			events:    events,
		}
		go w.dial()
		return w
	}
}

// Send writes a message to the wire. Before the dial completes, or after
// closure, it fails with ErrSocketNotOpen.
func (w *wsSocket) Send(m Message) error {
	w.mu.Lock()
	conn, closed := w.conn, w.closed
	w.mu.Unlock()

	if conn == nil || closed {
		return errors.Wrap(ErrSocketNotOpen, "send")
	}

	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	deadline := time.Now().Add(writeWait)

	switch m.Type() {
	case PingMessage:
		return conn.WriteControl(websocket.PingMessage, m.Data(), deadline)
	case PongMessage:
		return conn.WriteControl(websocket.PongMessage, m.Data(), deadline)
	case BinaryMessage:
		_ = conn.SetWriteDeadline(deadline)
		return conn.WriteMessage(websocket.BinaryMessage, m.Data())
	default:
		_ = conn.SetWriteDeadline(deadline)
		return conn.WriteMessage(websocket.TextMessage, m.Data())
	}
}

// Close requests closure with the given code and reason. The close event
// delivered to the supervisor carries this code, not the read error the
// teardown provokes. Idempotent.
func (w *wsSocket) Close(code int, reason string) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.closeCode = code
	w.closeReason = reason
	conn := w.conn
	w.mu.Unlock()

	if conn == nil {
		// Still dialing; the dial goroutine tears the connection down as
		// soon as it lands.
		return nil
	}

	w.writeMu.Lock()
	deadline := time.Now().Add(writeWait)
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		deadline,
	)
	w.writeMu.Unlock()

	return conn.Close()
}

func (w *wsSocket) dial() {
	params, err := w.repo.Get(context.Background())
	if err != nil {
		w.events.emitError(errors.Wrap(ErrCannotConnect, err.Error()))
		return
	}

	target := params.URL
	if target == "" {
		target = w.target
	}

	dialer := *w.dialer
	if len(w.protocols) > 0 {
		dialer.Subprotocols = w.protocols
	}

	conn, resp, err := dialer.Dial(target, params.Header)
	if err = w.classifyDialError(resp, err); err != nil {
		w.logger.Errorf("dial %s: %s", target, err)
		w.events.emitError(err)
		return
	}

	w.logger.Debugf("connected to %s", target)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		_ = conn.Close()
		return
	}
	w.conn = conn
	w.mu.Unlock()

	// Surface control frames as messages so the supervisor's keep-alive
	// policies decide how to answer them.
	conn.SetPingHandler(func(appData string) error {
		w.events.emitMessage(NewPingMessage([]byte(appData)))
		return nil
	})
	conn.SetPongHandler(func(appData string) error {
		w.events.emitMessage(NewPongMessage([]byte(appData)))
		return nil
	})

	w.events.emitOpen()

	w.read(conn)
}

func (w *wsSocket) read(conn *websocket.Conn) {
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			w.handleReadError(err)
			return
		}

		switch messageType {
		case websocket.BinaryMessage:
			w.events.emitMessage(NewBinaryMessage(data))
		default:
			w.events.emitMessage(NewTextMessage(data))
		}
	}
}

func (w *wsSocket) handleReadError(err error) {
	w.mu.Lock()
	closed, code, reason := w.closed, w.closeCode, w.closeReason
	w.mu.Unlock()

	if closed {
		// We initiated the closure; report the requested code rather than
		// the read error the teardown caused.
		w.emitCloseOnce(CloseEvent{Code: code, Reason: reason})
		return
	}

	w.logger.Warnf("websocket read: %s", err)

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		w.emitCloseOnce(CloseEvent{Code: closeErr.Code, Reason: closeErr.Text})
		return
	}

	w.emitCloseOnce(CloseEvent{
		Code:   websocket.CloseAbnormalClosure,
		Reason: err.Error(),
	})
}

func (w *wsSocket) emitCloseOnce(ev CloseEvent) {
	w.closeEventOnce.Do(func() {
		w.events.emitClose(ev)
	})
}

// classifyDialError separates "could not establish" from everything else, so
// the supervisor only retries the former.
func (w *wsSocket) classifyDialError(resp *http.Response, err error) error {
	if resp != nil {
		var msg string
		if resp.Body != nil {
			if bts, readErr := io.ReadAll(resp.Body); readErr == nil {
				msg = string(bts)
			}
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return errors.Wrap(ErrRateLimit, msg)
		}
	}

	if err != nil {
		return errors.Wrap(ErrCannotConnect, err.Error())
	}

	return nil
}
