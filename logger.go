package wsguard

// Logger is the leveled, field-aware logging surface the package writes to.
// Pass one via WithLogger; the default is NoopLogger.
type Logger interface {
	WithField(key string, value any) Logger
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (n nopLogger) WithField(string, any) Logger { return n }
func (nopLogger) Debugf(string, ...any)          {}
func (nopLogger) Infof(string, ...any)           {}
func (nopLogger) Warnf(string, ...any)           {}
func (nopLogger) Errorf(string, ...any)          {}

// NoopLogger returns a logger that discards everything.
func NoopLogger() Logger {
	return nopLogger{}
}
