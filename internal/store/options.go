package store

import (
	"io"
	"log/slog"
)

// Option configures a Local store.
type Option func(*Local)

// WithLogger sets the logger used for per-operation debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Local) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithStrictDecoding makes Get, Set and Remove return a *ParseError for
// unparsable section content instead of treating it as empty.
func WithStrictDecoding() Option {
	return func(l *Local) { l.strict = true }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
