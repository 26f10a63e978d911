package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"boj-notion/internal/domain/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS processed_submissions (
	id TEXT PRIMARY KEY,
	saved_at DATETIME NOT NULL
);`

// SQLiteStore keeps the processed submission ids in a SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger ports.Logger
}

var _ ports.LedgerStore = (*SQLiteStore)(nil)

// OpenSQLite opens (or creates) the ledger database at path.
// Use ":memory:" for a throwaway ledger.
func OpenSQLite(path string, logger ports.Logger) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	// One connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path, logger: logger}, nil
}

// Load returns every stored id.
func (s *SQLiteStore) Load(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM processed_submissions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger: %w", err)
	}
	return ids, nil
}

// Save overwrites the ledger with ids in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, ids []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ledger save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM processed_submissions`); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO processed_submissions (id, saved_at) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare ledger insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, id, now); err != nil {
			return fmt.Errorf("insert ledger id %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger: %w", err)
	}
	if s.logger != nil {
		s.logger.Info(ctx, "ledger saved", "count", len(ids))
	}
	return nil
}

// Reset removes every id.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM processed_submissions`); err != nil {
		return fmt.Errorf("reset ledger: %w", err)
	}
	if s.logger != nil {
		s.logger.Info(ctx, "ledger reset", "path", s.path)
	}
	return nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
