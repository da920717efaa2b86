package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Outcome of one background deletion task.
const (
	StatusDeleted = "DELETED"
	StatusMissing = "MISSING"
	StatusError   = "ERROR"
)

// DeletionLedger records the outcome of fire-and-forget deletions in
// SQLite. The queue never reports results to its callers, so the ledger is
// the only durable trail operators get.
type DeletionLedger struct {
	db *sql.DB
}

// Record is a single background deletion outcome.
type Record struct {
	ID           int64
	Timestamp    time.Time
	Status       string
	Path         string
	FileName     string
	Size         int64
	ErrorMessage string
}

// Open creates the database connection and initializes the schema.
func Open(dbPath string) (*DeletionLedger, error) {
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory %s: %w", dir, err)
		}
	}

	// _loc=auto enables automatic DATETIME parsing
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	// Forces the file to be created before we commit to this handle.
	if _, err = db.Exec("SELECT 1"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize ledger (check permissions on %s): %w", dbPath, err)
	}

	// WAL allows the report tool to read while the queue writes.
	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err = db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	l := &DeletionLedger{db: db}
	if err := l.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *DeletionLedger) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS async_deletions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		status TEXT NOT NULL,
		path TEXT NOT NULL,
		file_name TEXT,
		size INTEGER NOT NULL,
		error_message TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_timestamp ON async_deletions(timestamp);
	CREATE INDEX IF NOT EXISTS idx_status ON async_deletions(status);
	CREATE INDEX IF NOT EXISTS idx_path ON async_deletions(path);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`
	_, err := l.db.Exec(schema)
	return err
}

// RecordDeletion inserts one deletion outcome.
func (l *DeletionLedger) RecordDeletion(status, path string, size int64, errMsg string) error {
	_, err := l.db.Exec(`
	INSERT INTO async_deletions (timestamp, status, path, file_name, size, error_message)
	VALUES (?, ?, ?, ?, ?, ?)
	`, time.Now(), status, path, filepath.Base(path), size, errMsg)
	return err
}

// Close closes the database connection
func (l *DeletionLedger) Close() error {
	return l.db.Close()
}

// Vacuum optimizes the database (run periodically)
func (l *DeletionLedger) Vacuum() error {
	_, err := l.db.Exec("VACUUM")
	return err
}

// PruneOlderThan removes records older than the given number of days and
// returns how many were deleted.
func (l *DeletionLedger) PruneOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	result, err := l.db.Exec(`DELETE FROM async_deletions WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
