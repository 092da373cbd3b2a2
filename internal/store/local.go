package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"securelocal/internal/domain"
)

// Local is the document store for one section. It holds no handle and no
// cached content; every call goes to the root.
type Local struct {
	root    domain.Root
	section domain.Section
	logger  *slog.Logger
	strict  bool
}

// New returns a Local for section on root. An empty section selects
// domain.DefaultSection.
func New(root domain.Root, section string, opts ...Option) *Local {
	l := &Local{
		root:    root,
		section: domain.Section(section).OrDefault(),
		logger:  discardLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Section returns the section this store reads and writes.
func (l *Local) Section() domain.Section { return l.section }

// Get returns the values for keys. nil returns the whole document. A string
// or list of strings returns only the named keys whose value is truthy.
// Any other keys shape returns an empty document without touching storage.
func (l *Local) Get(ctx context.Context, keys any) (domain.Document, error) {
	list, all, ok := normalizeKeys(keys)
	if !ok {
		l.logger.Debug("get ignored", "section", l.section, "keys_type", fmt.Sprintf("%T", keys))
		return domain.Document{}, nil
	}

	doc, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	if all {
		return doc, nil
	}

	out := domain.Document{}
	for _, k := range list {
		if v, present := doc[k]; present && truthy(v) {
			out[k] = v
		}
	}
	return out, nil
}

// Set merges items into the section document and rewrites it whole. A nil
// map is a no-op.
func (l *Local) Set(ctx context.Context, items map[string]any) error {
	if items == nil {
		l.logger.Debug("set ignored", "section", l.section)
		return nil
	}
	return l.rewrite(ctx, "set", func(doc domain.Document) {
		for k, v := range items {
			doc[k] = v
		}
	})
}

// Remove deletes keys from the section document and rewrites it whole.
// Absent keys are skipped. A nil or unsupported keys shape is a no-op.
func (l *Local) Remove(ctx context.Context, keys any) error {
	list, all, ok := normalizeKeys(keys)
	if !ok || all {
		l.logger.Debug("remove ignored", "section", l.section, "keys_type", fmt.Sprintf("%T", keys))
		return nil
	}
	return l.rewrite(ctx, "remove", func(doc domain.Document) {
		for _, k := range list {
			delete(doc, k)
		}
	})
}

// Clear removes the shared base directory recursively. Every section on the
// root is emptied, not only this one. Clearing a root that has no base
// directory yet returns nil even though the substrate reports ErrNotFound
// for it; any other substrate failure is returned wrapped.
func (l *Local) Clear(ctx context.Context) error {
	err := l.root.RemoveEntry(ctx, domain.BaseDirectory, true)
	if errors.Is(err, domain.ErrNotFound) {
		l.logger.Debug("clear skipped: no base directory", "section", l.section)
		return nil
	}
	if err != nil {
		return fmt.Errorf("clear base directory: %w", err)
	}
	l.logger.Debug("clear", "section", l.section, "directory", domain.BaseDirectory)
	return nil
}

// load reads and decodes the whole section document.
func (l *Local) load(ctx context.Context) (domain.Document, error) {
	f, err := l.openSection(ctx)
	if err != nil {
		return nil, err
	}
	text, err := f.Text(ctx)
	if err != nil {
		return nil, fmt.Errorf("read section %q: %w", l.section, err)
	}

	res := decode(text)
	if res.err != nil {
		perr := &ParseError{Section: l.section.String(), Err: res.err}
		if l.strict {
			return nil, perr
		}
		l.logger.Debug("unparsable section read as empty", "section", l.section, "error", perr)
	}
	return res.doc, nil
}

// rewrite runs one read-modify-write cycle. The writable is opened before
// the document is read and is aborted on every failure path.
func (l *Local) rewrite(ctx context.Context, op string, apply func(domain.Document)) (err error) {
	f, err := l.openSection(ctx)
	if err != nil {
		return err
	}
	w, err := f.CreateWritable(ctx)
	if err != nil {
		return fmt.Errorf("open writable for section %q: %w", l.section, err)
	}
	defer func() {
		if err != nil {
			_ = w.Abort()
		}
	}()

	doc, err := l.Get(ctx, nil)
	if err != nil {
		return err
	}
	apply(doc)

	data, err := encode(doc)
	if err != nil {
		return fmt.Errorf("encode section %q: %w", l.section, err)
	}
	if _, err = io.WriteString(w, data); err != nil {
		return fmt.Errorf("write section %q: %w", l.section, err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("commit section %q: %w", l.section, err)
	}

	l.logger.Debug(op, "section", l.section, "keys", len(doc), "bytes", len(data))
	return nil
}

// Compile-time assertion that Local implements domain.LocalStore.
var _ domain.LocalStore = (*Local)(nil)
