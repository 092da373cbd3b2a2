package substrate

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"securelocal/internal/domain"
)

// Memory is an in-process storage root. Content is lost with the process.
type Memory struct {
	mu   sync.RWMutex
	dirs map[string]*memDir
}

type memDir struct {
	files map[string]string
}

// NewMemory returns an empty Memory root.
func NewMemory() *Memory {
	return &Memory{dirs: make(map[string]*memDir)}
}

// Directory returns the named directory, creating it when create is set.
func (m *Memory) Directory(ctx context.Context, name string, create bool) (domain.Directory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.dirs[name]
	if !ok {
		if !create {
			return nil, fmt.Errorf("directory %q: %w", name, domain.ErrNotFound)
		}
		d = &memDir{files: make(map[string]string)}
		m.dirs[name] = d
	}
	return &memDirectory{root: m, name: name, dir: d}, nil
}

// RemoveEntry deletes the named directory. Handles obtained before removal
// go stale and report domain.ErrNotFound.
func (m *Memory) RemoveEntry(ctx context.Context, name string, recursive bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.dirs[name]
	if !ok {
		return fmt.Errorf("directory %q: %w", name, domain.ErrNotFound)
	}
	if !recursive && len(d.files) > 0 {
		return fmt.Errorf("directory %q: %w", name, domain.ErrNotEmpty)
	}
	delete(m.dirs, name)
	return nil
}

// live reports whether d is still the directory registered under name.
// Callers must hold m.mu.
func (m *Memory) live(name string, d *memDir) bool {
	return m.dirs[name] == d
}

type memDirectory struct {
	root *Memory
	name string
	dir  *memDir
}

func (d *memDirectory) Name() string { return d.name }

func (d *memDirectory) File(ctx context.Context, name string, create bool) (domain.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	d.root.mu.Lock()
	defer d.root.mu.Unlock()

	if !d.root.live(d.name, d.dir) {
		return nil, fmt.Errorf("directory %q: %w", d.name, domain.ErrNotFound)
	}
	if _, ok := d.dir.files[name]; !ok {
		if !create {
			return nil, fmt.Errorf("file %q: %w", name, domain.ErrNotFound)
		}
		d.dir.files[name] = ""
	}
	return &memFile{parent: d, name: name}, nil
}

func (d *memDirectory) Entries(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.root.mu.RLock()
	defer d.root.mu.RUnlock()

	if !d.root.live(d.name, d.dir) {
		return nil, fmt.Errorf("directory %q: %w", d.name, domain.ErrNotFound)
	}
	names := make([]string, 0, len(d.dir.files))
	for name := range d.dir.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type memFile struct {
	parent *memDirectory
	name   string
}

func (f *memFile) Name() string { return f.name }

func (f *memFile) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	root := f.parent.root

	root.mu.RLock()
	defer root.mu.RUnlock()

	if !root.live(f.parent.name, f.parent.dir) {
		return "", fmt.Errorf("directory %q: %w", f.parent.name, domain.ErrNotFound)
	}
	content, ok := f.parent.dir.files[f.name]
	if !ok {
		return "", fmt.Errorf("file %q: %w", f.name, domain.ErrNotFound)
	}
	return content, nil
}

func (f *memFile) CreateWritable(ctx context.Context) (domain.Writable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &memWritable{file: f}, nil
}

type memWritable struct {
	file *memFile
	buf  bytes.Buffer
	done bool
}

func (w *memWritable) Write(p []byte) (int, error) {
	if w.done {
		return 0, domain.ErrClosed
	}
	return w.buf.Write(p)
}

func (w *memWritable) Close() error {
	if w.done {
		return domain.ErrClosed
	}
	w.done = true

	parent := w.file.parent
	root := parent.root

	root.mu.Lock()
	defer root.mu.Unlock()

	if !root.live(parent.name, parent.dir) {
		return fmt.Errorf("directory %q: %w", parent.name, domain.ErrNotFound)
	}
	parent.dir.files[w.file.name] = w.buf.String()
	return nil
}

func (w *memWritable) Abort() error {
	w.done = true
	w.buf.Reset()
	return nil
}

// Compile-time assertion that Memory implements domain.Root.
var _ domain.Root = (*Memory)(nil)
