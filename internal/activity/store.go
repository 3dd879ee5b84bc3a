package activity

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	// MaxStored is the number of records kept.
	MaxStored = 10
	// RecentCount is the number of records Recent surfaces.
	RecentCount = 5
)

const schema = `
CREATE TABLE IF NOT EXISTS activity (
	id             TEXT PRIMARY KEY,
	seq            INTEGER NOT NULL,
	type           TEXT NOT NULL,
	icon           TEXT NOT NULL,
	color          TEXT NOT NULL,
	title          TEXT NOT NULL,
	timestamp      INTEGER NOT NULL,
	has_result     INTEGER NOT NULL,
	result_preview TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_activity_seq ON activity(seq);
`

// Store keeps the most recent activity records in SQLite, newest first.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens or creates the store at path. ":memory:" is accepted.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("activity")

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// single connection serializes writes and keeps :memory: alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Debug("failed to set busy_timeout", zap.Error(err))
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Debug("store opened", zap.String("path", path))
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts r at the front of the list. A record with the same ID is
// replaced and moved to the front. Only the newest MaxStored are kept.
func (s *Store) Save(ctx context.Context, r Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM activity`).Scan(&seq); err != nil {
		return fmt.Errorf("next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO activity (id, seq, type, icon, color, title, timestamp, has_result, result_preview)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			seq = excluded.seq,
			type = excluded.type,
			icon = excluded.icon,
			color = excluded.color,
			title = excluded.title,
			timestamp = excluded.timestamp,
			has_result = excluded.has_result,
			result_preview = excluded.result_preview`,
		r.ID, seq, string(r.Type), r.Icon, r.Color, r.Title,
		r.Timestamp.UnixMilli(), r.HasResult, r.ResultPreview)
	if err != nil {
		return fmt.Errorf("save activity: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM activity WHERE id NOT IN (
			SELECT id FROM activity ORDER BY seq DESC LIMIT ?
		)`, MaxStored)
	if err != nil {
		return fmt.Errorf("trim activity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if n, _ := res.RowsAffected(); n > 0 {
		s.logger.Debug("evicted old activity", zap.Int64("count", n))
	}
	return nil
}

// LoadRecent returns up to n records, newest first.
func (s *Store) LoadRecent(ctx context.Context, n int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, icon, color, title, timestamp, has_result, result_preview
		FROM activity ORDER BY seq DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, n)
	for rows.Next() {
		var (
			r     Record
			typ   string
			stamp int64
		)
		if err := rows.Scan(&r.ID, &typ, &r.Icon, &r.Color, &r.Title, &stamp, &r.HasResult, &r.ResultPreview); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		r.Type = Type(typ)
		r.Timestamp = time.UnixMilli(stamp)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Recent returns the RecentCount newest records.
func (s *Store) Recent(ctx context.Context) ([]Record, error) {
	return s.LoadRecent(ctx, RecentCount)
}
