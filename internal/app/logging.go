package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewLogger returns a text logger writing to w at the named level.
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	if strings.TrimSpace(level) == "" {
		level = "warn"
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
