package substrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"securelocal/internal/domain"
)

const (
	dirMode  os.FileMode = 0o700
	fileMode os.FileMode = 0o600

	swapSuffix = ".crswap"
)

// Disk is a storage root backed by a directory on the local filesystem.
type Disk struct {
	dir string
}

// NewDisk returns a Disk rooted at dir. The directory is created lazily.
func NewDisk(dir string) *Disk {
	return &Disk{dir: dir}
}

// Path returns the filesystem path of the root.
func (d *Disk) Path() string { return d.dir }

// Directory returns the named directory, creating it when create is set.
func (d *Disk) Directory(ctx context.Context, name string, create bool) (domain.Directory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	path := filepath.Join(d.dir, name)
	if create {
		if err := os.MkdirAll(path, dirMode); err != nil {
			return nil, err
		}
		return &diskDirectory{name: name, path: path}, nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("directory %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory: %w", name, domain.ErrNotFound)
	}
	return &diskDirectory{name: name, path: path}, nil
}

// RemoveEntry deletes the named directory.
func (d *Disk) RemoveEntry(ctx context.Context, name string, recursive bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}
	path := filepath.Join(d.dir, name)
	entries, err := os.ReadDir(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("directory %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if !recursive {
		if len(entries) > 0 {
			return fmt.Errorf("directory %q: %w", name, domain.ErrNotEmpty)
		}
		return os.Remove(path)
	}
	return os.RemoveAll(path)
}

type diskDirectory struct {
	name string
	path string
}

func (d *diskDirectory) Name() string { return d.name }

func (d *diskDirectory) File(ctx context.Context, name string, create bool) (domain.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	path := filepath.Join(d.path, name)
	if create {
		f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, fileMode)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("directory %q: %w", d.name, domain.ErrNotFound)
			}
			return nil, err
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		return &diskFile{name: name, path: path}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file %q: %w", name, domain.ErrNotFound)
		}
		return nil, err
	}
	return &diskFile{name: name, path: path}, nil
}

// Entries lists regular files, leaving out in-flight swap files.
func (d *diskDirectory) Entries(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(d.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("directory %q: %w", d.name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || isSwapFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

type diskFile struct {
	name string
	path string
}

func (f *diskFile) Name() string { return f.name }

func (f *diskFile) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("file %q: %w", f.name, domain.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateWritable opens a swap file beside the target. Close renames it over
// the target, so readers only ever see a complete document.
func (f *diskFile) CreateWritable(ctx context.Context) (domain.Writable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tmp := filepath.Join(filepath.Dir(f.path), swapName(f.name))
	w, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file %q: %w", f.name, domain.ErrNotFound)
		}
		return nil, err
	}
	return &diskWritable{f: w, tmp: tmp, target: f.path}, nil
}

type diskWritable struct {
	f      *os.File
	tmp    string
	target string
	done   bool
}

func (w *diskWritable) Write(p []byte) (int, error) {
	if w.done {
		return 0, domain.ErrClosed
	}
	return w.f.Write(p)
}

func (w *diskWritable) Close() error {
	if w.done {
		return domain.ErrClosed
	}
	w.done = true

	// Best-effort cleanup if anything fails before rename.
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(w.tmp)
		}
	}()

	if err := w.f.Chmod(fileMode); err != nil {
		_ = w.f.Close()
		return err
	}
	if err := w.f.Close(); err != nil {
		return err
	}
	if err := os.Rename(w.tmp, w.target); err != nil {
		return err
	}
	committed = true
	return nil
}

func (w *diskWritable) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	_ = w.f.Close()
	if err := os.Remove(w.tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func swapName(name string) string {
	return "." + name + "." + uuid.NewString() + swapSuffix
}

// isSwapFile reports whether name has the exact shape swapName produces, so
// a section that merely looks similar is still listed.
func isSwapFile(name string) bool {
	rest, ok := strings.CutSuffix(name, swapSuffix)
	if !ok || !strings.HasPrefix(rest, ".") {
		return false
	}
	i := strings.LastIndexByte(rest, '.')
	if i < 2 {
		return false
	}
	id := rest[i+1:]
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// Compile-time assertion that Disk implements domain.Root.
var _ domain.Root = (*Disk)(nil)
