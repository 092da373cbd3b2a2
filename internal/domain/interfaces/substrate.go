package interfaces

import (
	"context"
	"io"
)

// Root is the origin-private storage area. It only holds directories.
type Root interface {
	// Directory returns the named directory, creating it when create is set.
	// A missing directory without create yields domain.ErrNotFound.
	Directory(ctx context.Context, name string, create bool) (Directory, error)
	// RemoveEntry deletes the named directory. Without recursive a
	// non-empty directory yields domain.ErrNotEmpty.
	RemoveEntry(ctx context.Context, name string, recursive bool) error
}

// Directory is a handle on one directory inside the Root.
type Directory interface {
	Name() string
	// File returns the named file, creating an empty one when create is set.
	File(ctx context.Context, name string, create bool) (File, error)
	// Entries lists the names of the files in the directory.
	Entries(ctx context.Context) ([]string, error)
}

// File is a handle on one file. Handles are cheap and hold no open
// descriptor between calls.
type File interface {
	Name() string
	// Text returns the full committed content.
	Text(ctx context.Context) (string, error)
	// CreateWritable starts a replacement of the file content. Nothing is
	// visible to readers until Close.
	CreateWritable(ctx context.Context) (Writable, error)
}

// Writable buffers a full replacement of a file's content.
type Writable interface {
	io.Writer
	// Close commits everything written so far as the new file content.
	Close() error
	// Abort discards the pending content. Abort after Close is a no-op.
	Abort() error
}
