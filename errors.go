package wsguard

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidState is returned when Send is called on a supervisor whose
	// Open was never invoked.
	ErrInvalidState = errors.New("no socket has been created, call Open first")

	// ErrCannotConnect marks dial failures where no connection could be
	// established at all. The supervisor recovers from these internally and
	// never forwards them to error observers.
	ErrCannotConnect = errors.New("connection cannot be established")

	// ErrSocketNotOpen is returned by a socket that exists but is not ready
	// to carry traffic yet.
	ErrSocketNotOpen = errors.New("socket is not open")

	ErrRateLimit = errors.New("rate limit exceeded")
)
