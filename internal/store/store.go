// Package store handles SQLite persistence for the session history. The
// analytics core never touches it directly; it only consumes the read-only
// session snapshots this package loads.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // SQLite driver.

	"github.com/skatelog/tricksense/internal/logger"
	"github.com/skatelog/tricksense/internal/utils"
	"github.com/skatelog/tricksense/pkg/catalog"
	"github.com/skatelog/tricksense/pkg/session"
)

// Store wraps SQLite access for session history data.
type Store struct {
	db  *sql.DB
	log *log.Logger
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, log: logger.New("store")}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			session_date TEXT NOT NULL,
			note TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_tricks (
			session_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			trick_type TEXT NOT NULL,
			difficulty INTEGER NOT NULL,
			PRIMARY KEY (session_id, name)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(session_date);`,
		`CREATE INDEX IF NOT EXISTS idx_session_tricks_name ON session_tricks(name);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a session and its landed tricks.
func (s *Store) InsertSession(ctx context.Context, sess session.Session) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (session_date, note) VALUES (?, ?)`,
		sess.Date.Format(time.RFC3339Nano),
		sess.Note,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	// Assign to the outer err on every failure path so the deferred
	// rollback sees it and releases the write lock.
	if len(sess.Tricks) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO session_tricks (session_id, name, trick_type, difficulty)
			 VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		for _, t := range sess.Tricks {
			if _, err = stmt.ExecContext(ctx, id, t.Name, t.Type.String(), t.Difficulty); err != nil {
				if cerr := stmt.Close(); cerr != nil {
					// Best-effort statement close.
					_ = cerr
				}
				return 0, err
			}
		}
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListSessions returns the full session history, oldest first.
func (s *Store) ListSessions(ctx context.Context) ([]session.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_date, note FROM sessions ORDER BY session_date ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	type row struct {
		id   int64
		sess session.Session
	}
	var loaded []row
	for rows.Next() {
		var r row
		var rawDate string
		if err := rows.Scan(&r.id, &rawDate, &r.sess.Note); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, rawDate)
		if err != nil {
			return nil, fmt.Errorf("session %d has bad date %q: %w", r.id, rawDate, err)
		}
		r.sess.Date = parsed
		loaded = append(loaded, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sessions := make([]session.Session, 0, len(loaded))
	for _, r := range loaded {
		tricks, err := s.tricksForSession(ctx, r.id)
		if err != nil {
			return nil, err
		}
		r.sess.Tricks = tricks
		sessions = append(sessions, r.sess)
	}
	return sessions, nil
}

func (s *Store) tricksForSession(ctx context.Context, sessionID int64) ([]catalog.Trick, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, trick_type, difficulty FROM session_tricks WHERE session_id = ? ORDER BY name ASC`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var tricks []catalog.Trick
	for rows.Next() {
		var t catalog.Trick
		var rawType string
		if err := rows.Scan(&t.Name, &rawType, &t.Difficulty); err != nil {
			return nil, err
		}
		trickType, err := catalog.ParseTrickType(rawType)
		if err != nil {
			s.log.Warnf("Session %d trick %q: %v, keeping as misc", sessionID, t.Name, err)
		}
		t.Type = trickType
		tricks = append(tricks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tricks, nil
}
