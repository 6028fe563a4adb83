package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SQLite is a Store in a SQLite database file.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// Open creates or opens the history database at path. The database uses WAL
// mode and a single connection, since SQLite allows one writer at a time.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Append inserts an entry.
func (s *SQLite) Append(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (session, seq, input, result, failed)
		VALUES (?, ?, ?, ?, ?)
	`, e.Session, e.Seq, e.Input, e.Result, e.Failed)
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("session %s seq %d: %w", e.Session, e.Seq, ErrDuplicate)
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// List returns the entries for a session, or all entries if session is empty.
func (s *SQLite) List(ctx context.Context, session string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session, seq, input, result, failed
		FROM entries
		WHERE ? = '' OR session = ?
		ORDER BY session ASC, seq ASC
	`, session, session)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	r := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Session, &e.Seq, &e.Input, &e.Result, &e.Failed); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		r = append(r, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return r, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
