package substrate

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"securelocal/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS directories (
  name TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS files (
  directory TEXT NOT NULL,
  name      TEXT NOT NULL,
  content   TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (directory, name)
);`

// SQLite is a storage root kept in a single SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the SQLite handle.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Directory returns the named directory, creating it when create is set.
func (s *SQLite) Directory(ctx context.Context, name string, create bool) (domain.Directory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if create {
		if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO directories (name) VALUES (?)`, name); err != nil {
			return nil, fmt.Errorf("create directory %q: %w", name, err)
		}
		return &sqliteDirectory{db: s.db, name: name}, nil
	}
	ok, err := directoryExists(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("directory %q: %w", name, domain.ErrNotFound)
	}
	return &sqliteDirectory{db: s.db, name: name}, nil
}

// RemoveEntry deletes the named directory and, when recursive, its files.
func (s *SQLite) RemoveEntry(ctx context.Context, name string, recursive bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ok, err := directoryExists(ctx, tx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("directory %q: %w", name, domain.ErrNotFound)
	}
	if !recursive {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM files WHERE directory = ?`, name).Scan(&n); err != nil {
			return fmt.Errorf("count files: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("directory %q: %w", name, domain.ErrNotEmpty)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE directory = ?`, name); err != nil {
		return fmt.Errorf("delete files: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM directories WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete directory: %w", err)
	}
	return tx.Commit()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func directoryExists(ctx context.Context, q queryer, name string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM directories WHERE name = ?`, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup directory %q: %w", name, err)
	}
	return true, nil
}

type sqliteDirectory struct {
	db   *sql.DB
	name string
}

func (d *sqliteDirectory) Name() string { return d.name }

func (d *sqliteDirectory) File(ctx context.Context, name string, create bool) (domain.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	ok, err := directoryExists(ctx, d.db, d.name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("directory %q: %w", d.name, domain.ErrNotFound)
	}
	if create {
		if _, err := d.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO files (directory, name, content) VALUES (?, ?, '')`,
			d.name, name,
		); err != nil {
			return nil, fmt.Errorf("create file %q: %w", name, err)
		}
		return &sqliteFile{db: d.db, dir: d.name, name: name}, nil
	}
	var one int
	err = d.db.QueryRowContext(ctx,
		`SELECT 1 FROM files WHERE directory = ? AND name = ?`, d.name, name,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("file %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup file %q: %w", name, err)
	}
	return &sqliteFile{db: d.db, dir: d.name, name: name}, nil
}

func (d *sqliteDirectory) Entries(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ok, err := directoryExists(ctx, d.db, d.name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("directory %q: %w", d.name, domain.ErrNotFound)
	}
	rows, err := d.db.QueryContext(ctx, `SELECT name FROM files WHERE directory = ? ORDER BY name`, d.name)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan file name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

type sqliteFile struct {
	db   *sql.DB
	dir  string
	name string
}

func (f *sqliteFile) Name() string { return f.name }

func (f *sqliteFile) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var content string
	err := f.db.QueryRowContext(ctx,
		`SELECT content FROM files WHERE directory = ? AND name = ?`, f.dir, f.name,
	).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("file %q: %w", f.name, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read file %q: %w", f.name, err)
	}
	return content, nil
}

// CreateWritable buffers content in memory. The writable is bound to ctx:
// Close commits with it.
func (f *sqliteFile) CreateWritable(ctx context.Context) (domain.Writable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &sqliteWritable{ctx: ctx, file: f}, nil
}

type sqliteWritable struct {
	ctx  context.Context
	file *sqliteFile
	buf  bytes.Buffer
	done bool
}

func (w *sqliteWritable) Write(p []byte) (int, error) {
	if w.done {
		return 0, domain.ErrClosed
	}
	return w.buf.Write(p)
}

func (w *sqliteWritable) Close() error {
	if w.done {
		return domain.ErrClosed
	}
	w.done = true

	res, err := w.file.db.ExecContext(w.ctx,
		`UPDATE files SET content = ? WHERE directory = ? AND name = ?`,
		w.buf.String(), w.file.dir, w.file.name,
	)
	if err != nil {
		return fmt.Errorf("write file %q: %w", w.file.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write file %q: %w", w.file.name, err)
	}
	if n == 0 {
		return fmt.Errorf("file %q: %w", w.file.name, domain.ErrNotFound)
	}
	return nil
}

func (w *sqliteWritable) Abort() error {
	w.done = true
	w.buf.Reset()
	return nil
}

// Compile-time assertion that SQLite implements domain.Root.
var _ domain.Root = (*SQLite)(nil)
