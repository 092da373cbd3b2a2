package domain

import "errors"

var (
	// ErrNotFound is returned when a directory or file does not exist and
	// creation was not requested.
	ErrNotFound = errors.New("entry not found")

	// ErrInvalidName is returned by substrates for names they cannot hold,
	// such as names containing a path separator.
	ErrInvalidName = errors.New("invalid entry name")

	// ErrNotEmpty is returned when removing a non-empty directory without
	// recursion.
	ErrNotEmpty = errors.New("directory not empty")

	// ErrClosed is returned when writing to a committed or aborted writable.
	ErrClosed = errors.New("writable already closed")
)
