package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "modernc.org/sqlite"

	"listo/internal/todolist"
)

// Store keeps the saved snapshot in an in-memory SQLite database. Nothing
// is written to disk and the data is gone once the Store is closed.
type Store struct {
	db *sql.DB
}

func Open(name string) (*Store, error) {
	if name == "" {
		return nil, errors.New("snapshot database name is empty")
	}
	if strings.ContainsAny(name, "/\\?#") {
		return nil, fmt.Errorf("snapshot database name %q must not contain path or query characters", name)
	}
	db, err := sql.Open("sqlite", sqliteDSN(name))
	if err != nil {
		return nil, err
	}
	// An in-memory database lives only as long as its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS entries (
	name TEXT PRIMARY KEY,
	description TEXT NOT NULL DEFAULT '',
	completed INTEGER NOT NULL DEFAULT 0
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Save replaces the stored snapshot with active. An empty active list
// leaves the previous snapshot in place.
func (s *Store) Save(ctx context.Context, active *todolist.List) error {
	if active.Len() == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries;`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries (name, description, completed) VALUES (?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for e := range active.Entries() {
		done := 0
		if e.Completed {
			done = 1
		}
		if _, err := stmt.ExecContext(ctx, e.Name, e.Description, done); err != nil {
			return fmt.Errorf("insert %q: %w", e.Name, err)
		}
	}
	return tx.Commit()
}

// Restore copies the stored snapshot over active. When nothing has been
// saved, active is left as it is.
func (s *Store) Restore(ctx context.Context, active *todolist.List) error {
	saved, err := s.FetchEntries(ctx)
	if err != nil {
		return err
	}
	l := todolist.New()
	for _, e := range saved {
		l.Add(e.Name, e.Description)
		if e.Completed {
			l.Check(e.Name)
		}
	}
	active.CopyFrom(l)
	return nil
}

// FetchEntries returns the stored snapshot ordered by name.
func (s *Store) FetchEntries(ctx context.Context) ([]todolist.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, description, completed FROM entries ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []todolist.Entry
	for rows.Next() {
		var e todolist.Entry
		var done int
		if err := rows.Scan(&e.Name, &e.Description, &done); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Completed = done == 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func sqliteDSN(name string) string {
	u := url.URL{
		Scheme: "file",
		Opaque: name,
	}
	q := u.Query()
	q.Set("mode", "memory")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
