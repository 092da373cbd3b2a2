package store

import (
	"context"
	"errors"
	"fmt"

	"securelocal/internal/domain"
)

// resolveBaseDirectory returns the shared base directory, creating it on
// first use.
func (l *Local) resolveBaseDirectory(ctx context.Context) (domain.Directory, error) {
	dir, err := l.root.Directory(ctx, domain.BaseDirectory, true)
	if err != nil {
		return nil, fmt.Errorf("resolve base directory: %w", err)
	}
	return dir, nil
}

// openSection returns the section file, creating an empty one if missing.
func (l *Local) openSection(ctx context.Context) (domain.File, error) {
	dir, err := l.resolveBaseDirectory(ctx)
	if err != nil {
		return nil, err
	}
	f, err := dir.File(ctx, l.section.String(), true)
	if err != nil {
		return nil, fmt.Errorf("open section %q: %w", l.section, err)
	}
	return f, nil
}

// ListSections returns the names of every section file in the base
// directory of root. It creates nothing; a missing base directory lists as
// empty.
func ListSections(ctx context.Context, root domain.Root) ([]string, error) {
	dir, err := root.Directory(ctx, domain.BaseDirectory, false)
	if errors.Is(err, domain.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve base directory: %w", err)
	}
	names, err := dir.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return names, nil
}
