package store_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"securelocal/internal/domain"
	"securelocal/internal/substrate"
)

// backends returns a fresh root per substrate so behaviour is checked on
// each of them.
func backends(t *testing.T) map[string]domain.Root {
	t.Helper()

	db, err := substrate.OpenSQLite(filepath.Join(t.TempDir(), "origin.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return map[string]domain.Root{
		"disk":   substrate.NewDisk(filepath.Join(t.TempDir(), "origin")),
		"memory": substrate.NewMemory(),
		"sqlite": db,
	}
}

// hookRoot wraps a root to observe and perturb substrate calls.
type hookRoot struct {
	domain.Root

	mu          sync.Mutex
	directories int
	writables   []*hookWritable

	afterText func()
	closeErr  error
	removeErr error
}

func (r *hookRoot) RemoveEntry(ctx context.Context, name string, recursive bool) error {
	if r.removeErr != nil {
		return r.removeErr
	}
	return r.Root.RemoveEntry(ctx, name, recursive)
}

func (r *hookRoot) Directory(ctx context.Context, name string, create bool) (domain.Directory, error) {
	r.mu.Lock()
	r.directories++
	r.mu.Unlock()

	d, err := r.Root.Directory(ctx, name, create)
	if err != nil {
		return nil, err
	}
	return &hookDirectory{Directory: d, root: r}, nil
}

func (r *hookRoot) directoryCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.directories
}

type hookDirectory struct {
	domain.Directory
	root *hookRoot
}

func (d *hookDirectory) File(ctx context.Context, name string, create bool) (domain.File, error) {
	f, err := d.Directory.File(ctx, name, create)
	if err != nil {
		return nil, err
	}
	return &hookFile{File: f, root: d.root}, nil
}

type hookFile struct {
	domain.File
	root *hookRoot
}

func (f *hookFile) Text(ctx context.Context) (string, error) {
	text, err := f.File.Text(ctx)
	if f.root.afterText != nil {
		f.root.afterText()
	}
	return text, err
}

func (f *hookFile) CreateWritable(ctx context.Context) (domain.Writable, error) {
	w, err := f.File.CreateWritable(ctx)
	if err != nil {
		return nil, err
	}
	hw := &hookWritable{Writable: w, closeErr: f.root.closeErr}
	f.root.mu.Lock()
	f.root.writables = append(f.root.writables, hw)
	f.root.mu.Unlock()
	return hw, nil
}

type hookWritable struct {
	domain.Writable
	closeErr error
	closed   bool
	aborted  bool
}

func (w *hookWritable) Close() error {
	w.closed = true
	if w.closeErr != nil {
		return w.closeErr
	}
	return w.Writable.Close()
}

func (w *hookWritable) Abort() error {
	w.aborted = true
	return w.Writable.Abort()
}

// writeRaw replaces a section file's content directly on the root.
func writeRaw(t *testing.T, root domain.Root, section, content string) {
	t.Helper()
	ctx := context.Background()

	dir, err := root.Directory(ctx, domain.BaseDirectory, true)
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	f, err := dir.File(ctx, section, true)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	w, err := f.CreateWritable(ctx)
	if err != nil {
		t.Fatalf("writable: %v", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

// readRaw returns a section file's content directly from the root.
func readRaw(t *testing.T, root domain.Root, section string) string {
	t.Helper()
	ctx := context.Background()

	dir, err := root.Directory(ctx, domain.BaseDirectory, false)
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	f, err := dir.File(ctx, section, false)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	text, err := f.Text(ctx)
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	return text
}
