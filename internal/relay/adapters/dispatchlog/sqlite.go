package dispatchlog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/onimusic/notifications-helper/internal/relay/core"
)

// DispatchLog keeps one row per relayed send in SQLite
type DispatchLog struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewDispatchLog opens (or creates) the dispatch log database
func NewDispatchLog(dbPath string, logger *slog.Logger) (*DispatchLog, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dispatch log database: %w", err)
	}

	dl := &DispatchLog{
		db:     db,
		logger: logger,
	}

	if err := dl.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize dispatch log schema: %w", err)
	}

	logger.InfoContext(context.Background(), "Dispatch log initialized",
		"db_path", dbPath,
	)

	return dl, nil
}

// Close closes the database connection
func (dl *DispatchLog) Close() error {
	return dl.db.Close()
}

// RecordDispatch stores the outcome of a single send
func (dl *DispatchLog) RecordDispatch(ctx context.Context, record core.DispatchRecord) error {
	dl.logger.DebugContext(ctx, "Recording dispatch",
		"dispatch_id", record.ID,
		"method", record.Method,
		"status_code", record.StatusCode,
	)

	query := `
		INSERT INTO dispatches (
			id, kind, method, chat_id, status_code,
			success, error, duration_ms, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var statusCode sql.NullInt64
	if record.StatusCode != 0 {
		statusCode = sql.NullInt64{Int64: int64(record.StatusCode), Valid: true}
	}

	_, err := dl.db.ExecContext(ctx, query,
		record.ID,
		record.Kind,
		record.Method,
		record.ChatID,
		statusCode,
		record.Success,
		record.Error,
		record.Duration.Milliseconds(),
		record.Timestamp.UnixMilli(),
	)
	if err != nil {
		dl.logger.ErrorContext(ctx, "Failed to record dispatch",
			"dispatch_id", record.ID,
			"error", err.Error(),
		)
		return fmt.Errorf("failed to record dispatch: %w", err)
	}

	return nil
}

// GetStats summarizes every recorded dispatch
func (dl *DispatchLog) GetStats(ctx context.Context) (*core.DispatchStats, error) {
	stats := &core.DispatchStats{
		ByKind: make(map[string]int),
	}

	var (
		avgDuration sql.NullFloat64
		lastMillis  sql.NullInt64
	)
	err := dl.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status_code IS NULL THEN 1 ELSE 0 END), 0),
			AVG(duration_ms),
			MAX(timestamp)
		FROM dispatches
	`).Scan(&stats.Total, &stats.Succeeded, &stats.TransportFailures, &avgDuration, &lastMillis)
	if err != nil {
		return nil, fmt.Errorf("failed to query dispatch totals: %w", err)
	}

	stats.Failed = stats.Total - stats.Succeeded
	if avgDuration.Valid {
		stats.AvgDurationMs = avgDuration.Float64
	}
	if lastMillis.Valid {
		last := time.UnixMilli(lastMillis.Int64)
		stats.LastDispatchAt = &last
	}

	rows, err := dl.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM dispatches GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dispatches by kind: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind  string
			count int
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan dispatch kind row: %w", err)
		}
		stats.ByKind[kind] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dispatch kind rows: %w", err)
	}

	dl.logger.DebugContext(ctx, "Retrieved dispatch stats", "total", stats.Total)

	return stats, nil
}

// initSchema initializes the database schema
func (dl *DispatchLog) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS dispatches (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		method TEXT NOT NULL,
		chat_id TEXT NOT NULL,
		status_code INTEGER,
		success BOOLEAN NOT NULL,
		error TEXT,
		duration_ms INTEGER NOT NULL,
		timestamp INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_dispatches_chat_id ON dispatches(chat_id);
	CREATE INDEX IF NOT EXISTS idx_dispatches_timestamp ON dispatches(timestamp);
	`

	_, err := dl.db.Exec(schema)
	return err
}
