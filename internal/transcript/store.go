// Package transcript persists interpreter traces to a SQLite database so a
// run can be inspected after the process exits.
package transcript

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rphilander/minilisp"
)

const schema = `CREATE TABLE IF NOT EXISTS traces (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	session   TEXT    NOT NULL,
	seq       INTEGER NOT NULL,
	form      TEXT    NOT NULL,
	result    TEXT    NOT NULL,
	error     TEXT    NOT NULL,
	timestamp TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS traces_session ON traces (session, seq);`

// Entry is one stored trace row.
type Entry struct {
	Session   string
	Seq       int
	Form      string
	Result    string
	Error     string
	Timestamp string
}

// Store writes traces for a single session. It implements
// minilisp.Recorder.
type Store struct {
	db      *sql.DB
	path    string
	session string
	mu      sync.Mutex
}

// NewSessionID returns an identifier derived from the current time.
func NewSessionID() string {
	return time.Now().UTC().Format("20060102T150405.000000000Z")
}

// Open opens (or creates) the database at path and records under session.
func Open(path, session string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("transcript: missing db path")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("transcript: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("transcript: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("transcript: create schema: %w", err)
	}
	log.Printf("opened transcript: %s (session %s)", path, session)
	return &Store{db: db, path: path, session: session}, nil
}

// Session returns the session this store records under.
func (s *Store) Session() string {
	return s.session
}

func (s *Store) Record(t minilisp.Trace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := ""
	if !t.Failed() {
		result = t.Result.String()
	}
	_, err := s.db.Exec(
		`INSERT INTO traces (session, seq, form, result, error, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
		s.session, t.Seq, t.Form, result, t.Error, t.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("transcript: insert: %w", err)
	}
	return nil
}

// List returns the entries recorded under session, in evaluation order.
func (s *Store) List(session string) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT session, seq, form, result, error, timestamp FROM traces WHERE session = ? ORDER BY seq, id`,
		session,
	)
	if err != nil {
		return nil, fmt.Errorf("transcript: query: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Session, &e.Seq, &e.Form, &e.Result, &e.Error, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("transcript: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("transcript: query: %w", err)
	}
	return entries, nil
}

// Sessions lists every session in the database, oldest first.
func (s *Store) Sessions() ([]string, error) {
	rows, err := s.db.Query(`SELECT session FROM traces GROUP BY session ORDER BY MIN(id)`)
	if err != nil {
		return nil, fmt.Errorf("transcript: query: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("transcript: scan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}
	log.Printf("closed transcript: %s", s.path)
	return nil
}
