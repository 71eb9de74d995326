package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Madhesh247/Zenfocus/internal/model"
)

var ErrNotFound = errors.New("not found")

type SessionLogRepository struct {
	db *sql.DB
}

func NewSessionLogRepository(db *sql.DB) *SessionLogRepository {
	return &SessionLogRepository{db: db}
}

func (r *SessionLogRepository) Insert(ctx context.Context, entry *model.SessionLog) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO session_logs (id, timer_label, mode, duration_seconds, timestamp_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID,
		entry.TimerLabel,
		entry.Mode,
		entry.Duration,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert session log: %w", err)
	}
	return nil
}

// ListAll returns every log entry, newest first.
func (r *SessionLogRepository) ListAll(ctx context.Context) ([]model.SessionLog, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, timer_label, mode, duration_seconds, timestamp_ms
		 FROM session_logs
		 ORDER BY timestamp_ms DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list session logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.SessionLog, 0)
	for rows.Next() {
		var entry model.SessionLog
		if err := rows.Scan(
			&entry.ID,
			&entry.TimerLabel,
			&entry.Mode,
			&entry.Duration,
			&entry.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan session log: %w", err)
		}
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session logs: %w", err)
	}

	return logs, nil
}
