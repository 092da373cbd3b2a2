// Package substrate provides the durable storage areas a section store is
// built on.
//
// Each implementation satisfies domain.Root: a flat set of directories, each
// holding flat files, with create-if-missing handles, whole-file reads and
// whole-file replacement through a Writable that only becomes visible on
// Close.
//
// The package includes:
//   - Disk: a directory on the local filesystem (swap file, then rename)
//   - SQLite: a single database file (modernc.org/sqlite)
//   - Memory: an in-process tree, for tests and throwaway runs
//
// No implementation encrypts content. Access control is whatever the host
// filesystem provides.
package substrate
