package wsguard

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type zerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger adapts an existing zerolog.Logger to the Logger interface.
func NewZerologLogger(l zerolog.Logger) Logger {
	return zerologLogger{l: l}
}

// NewLogger builds a timestamped zerolog-backed Logger writing to w.
// A nil writer defaults to stdout.
func NewLogger(w io.Writer) Logger {
	if w == nil {
		w = os.Stdout
	}
	return zerologLogger{l: zerolog.New(w).With().Timestamp().Logger()}
}

func (z zerologLogger) WithField(key string, value any) Logger {
	return zerologLogger{l: z.l.With().Interface(key, value).Logger()}
}

func (z zerologLogger) Debugf(format string, args ...any) {
	z.l.Debug().Msgf(format, args...)
}

func (z zerologLogger) Infof(format string, args ...any) {
	z.l.Info().Msgf(format, args...)
}

func (z zerologLogger) Warnf(format string, args ...any) {
	z.l.Warn().Msgf(format, args...)
}

func (z zerologLogger) Errorf(format string, args ...any) {
	z.l.Error().Msgf(format, args...)
}
