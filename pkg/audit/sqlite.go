package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coder/quartz"
	"github.com/decred/slog"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists audit entries to a SQLite database so hand history
// survives server restarts.
type SQLiteStore struct {
	db    *sql.DB
	clock quartz.Clock
	log   slog.Logger
}

// NewSQLiteStore opens (creating if missing) the audit database at dbPath.
func NewSQLiteStore(dbPath string, clock quartz.Clock, log slog.Logger) (*SQLiteStore, error) {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if log == nil {
		log = slog.Disabled
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, clock: clock, log: log}, nil
}

// createTables creates the necessary database tables
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS showdown_audit (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			hand_number INTEGER NOT NULL,
			type TEXT NOT NULL,
			player TEXT,
			detail TEXT,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_showdown_audit_game
		ON showdown_audit (game_id, hand_number)
	`)
	return err
}

// AddEntry records an event. Failures are logged, not returned: audit writes
// are best-effort and must never interrupt a live showdown.
func (s *SQLiteStore) AddEntry(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = s.clock.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO showdown_audit (game_id, hand_number, type, player, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.GameID, e.HandNumber, string(e.Type), e.Player, e.Detail, e.Timestamp)
	if err != nil {
		s.log.Errorf("failed to record audit entry %s for game %s: %v", e.Type, e.GameID, err)
	}
}

// GetShowdownAudit returns the entries for one hand, oldest first.
func (s *SQLiteStore) GetShowdownAudit(gameID string, handNumber int) []Entry {
	return s.query(`
		SELECT game_id, hand_number, type, player, detail, created_at
		FROM showdown_audit
		WHERE game_id = ? AND hand_number = ?
		ORDER BY id
	`, gameID, handNumber)
}

// GetGameShowdownAudits returns all entries for a game, oldest first.
func (s *SQLiteStore) GetGameShowdownAudits(gameID string) []Entry {
	return s.query(`
		SELECT game_id, hand_number, type, player, detail, created_at
		FROM showdown_audit
		WHERE game_id = ?
		ORDER BY id
	`, gameID)
}

func (s *SQLiteStore) query(q string, args ...interface{}) []Entry {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		s.log.Errorf("failed to query audit entries: %v", err)
		return nil
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var typ string
		if err := rows.Scan(&e.GameID, &e.HandNumber, &typ, &e.Player, &e.Detail, &e.Timestamp); err != nil {
			s.log.Errorf("failed to scan audit entry: %v", err)
			return out
		}
		e.Type = EntryType(typ)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		s.log.Errorf("failed to iterate audit entries: %v", err)
	}
	return out
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
