package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists delivery attempts to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS dispatches (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			trigger_type TEXT,
			symbol       TEXT,
			recipient    TEXT,
			signal       TEXT,
			latest_close REAL,
			latest_sma   REAL,
			ok           INTEGER,
			error        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_dispatches_ts ON dispatches(timestamp)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordDispatch(evt *DispatchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := evt.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO dispatches
		(timestamp, trigger_type, symbol, recipient, signal, latest_close, latest_sma, ok, error)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		at.Unix(), string(evt.Trigger), evt.Symbol, evt.Recipient, string(evt.Signal),
		evt.LatestClose, evt.LatestSMA, evt.OK, evt.Error,
	)
	return err
}

// CountDispatches returns how many attempts are journaled, optionally only successful ones.
func (r *SQLiteRecorder) CountDispatches(onlyOK bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := `SELECT COUNT(*) FROM dispatches`
	if onlyOK {
		q += ` WHERE ok = 1`
	}
	var n int
	if err := r.db.QueryRow(q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
