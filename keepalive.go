package wsguard

import (
	"sync"
	"time"
)

// keepAliveRunner sends periodic pings through the supervisor while a
// connection is open. It starts on every open event and stops on close, so a
// reconnected socket gets a fresh ticker.
type keepAliveRunner struct {
	logger   Logger
	interval time.Duration
	send     func(Message) error

	mu    sync.Mutex
	stopC chan struct{}
}

func newKeepAliveRunner(logger Logger, interval time.Duration, send func(Message) error) *keepAliveRunner {
	return &keepAliveRunner{
		logger:   logger.WithField("subtype", "keepAlive"),
		interval: interval,
		send:     send,
	}
}

func (k *keepAliveRunner) start() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.stopC != nil {
		close(k.stopC)
	}

	stopC := make(chan struct{})
	k.stopC = stopC

	go k.run(stopC)
}

func (k *keepAliveRunner) stop() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.stopC != nil {
		close(k.stopC)
		k.stopC = nil
	}
}

func (k *keepAliveRunner) run(stopC chan struct{}) {
	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopC:
			return
		case <-ticker.C:
			if err := k.send(NewPingMessage(nil)); err != nil {
				// The read side surfaces the real closure; a failed ping is
				// only worth a log line.
				k.logger.Warnf("cannot send keep-alive ping: %s", err)
			}
		}
	}
}
