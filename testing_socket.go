package wsguard

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// fakeSocket is a scripted Socket for tests: it records outbound traffic and
// lets the test fire lifecycle events by hand.
type fakeSocket struct {
	events SocketEvents

	mu     sync.Mutex
	sent   []Message
	closes []CloseEvent
}

func (f *fakeSocket) Send(m Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeSocket) Close(code int, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closes = append(f.closes, CloseEvent{Code: code, Reason: reason})
	return nil
}

func (f *fakeSocket) Sent() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Message, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *fakeSocket) Closes() []CloseEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]CloseEvent, len(f.closes))
	copy(out, f.closes)
	return out
}

func (f *fakeSocket) FireOpen()               { f.events.emitOpen() }
func (f *fakeSocket) FireMessage(m Message)   { f.events.emitMessage(m) }
func (f *fakeSocket) FireClose(ev CloseEvent) { f.events.emitClose(ev) }
func (f *fakeSocket) FireError(err error)     { f.events.emitError(err) }
func (f *fakeSocket) FireCloseCode(code int)  { f.FireClose(CloseEvent{Code: code}) }

// fakeSocketFactory hands out fakeSockets and keeps every one it created so
// tests can drive the socket a reconnect produced.
type fakeSocketFactory struct {
	mu      sync.Mutex
	sockets []*fakeSocket

	lastTarget    string
	lastProtocols []string
}

func newFakeSocketFactory() *fakeSocketFactory {
	return &fakeSocketFactory{}
}

func (f *fakeSocketFactory) New(target string, protocols []string, events SocketEvents) Socket {
	f.mu.Lock()
	defer f.mu.Unlock()

	sock := &fakeSocket{events: events}
	f.sockets = append(f.sockets, sock)
	f.lastTarget = target
	f.lastProtocols = protocols
	return sock
}

func (f *fakeSocketFactory) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.sockets)
}

func (f *fakeSocketFactory) Last() *fakeSocket {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.sockets) == 0 {
		return nil
	}
	return f.sockets[len(f.sockets)-1]
}

func (f *fakeSocketFactory) At(i int) *fakeSocket {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sockets[i]
}

// mockSocket is a testify-backed Socket for pass-through expectations.
type mockSocket struct {
	mock.Mock
}

func (m *mockSocket) Send(msg Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *mockSocket) Close(code int, reason string) error {
	args := m.Called(code, reason)
	return args.Error(0)
}
