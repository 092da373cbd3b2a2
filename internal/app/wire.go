package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"securelocal/internal/domain"
	"securelocal/internal/store"
	"securelocal/internal/substrate"
)

const sqliteFile = "securelocal.db"

// Wire bundles the storage root, logger and section store for the CLI.
type Wire struct {
	Root   domain.Root
	Store  domain.LocalStore
	Logger *slog.Logger

	closer io.Closer
}

// NewWire constructs the dependency graph from cfg. Logs go to logOut.
func NewWire(cfg Config, logOut io.Writer) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg.LogLevel, logOut)
	if err != nil {
		return nil, err
	}

	w := &Wire{Logger: logger}
	switch cfg.Backend {
	case BackendMemory:
		w.Root = substrate.NewMemory()
	case BackendDisk:
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, err
		}
		w.Root = substrate.NewDisk(cfg.Home)
	case BackendSQLite:
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, err
		}
		db, err := substrate.OpenSQLite(filepath.Join(cfg.Home, sqliteFile))
		if err != nil {
			return nil, err
		}
		w.Root = db
		w.closer = db
	default:
		return nil, fmt.Errorf("invalid backend %q", cfg.Backend)
	}

	opts := []store.Option{store.WithLogger(logger.With("backend", cfg.Backend))}
	if cfg.Strict {
		opts = append(opts, store.WithStrictDecoding())
	}
	w.Store = store.New(w.Root, cfg.Section, opts...)

	logger.Debug("wired", "backend", cfg.Backend, "home", cfg.Home, "section", w.Store.Section())
	return w, nil
}

// Close releases backend resources.
func (w *Wire) Close() error {
	if w == nil || w.closer == nil {
		return nil
	}
	return w.closer.Close()
}
