package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ValueRepository persists opaque named blobs in the app_values table. The
// preference store keeps its whole serialized value under one fixed key.
type ValueRepository struct {
	db *sql.DB
}

func NewValueRepository(db *sql.DB) *ValueRepository {
	return &ValueRepository{db: db}
}

func (r *ValueRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(
		ctx,
		`SELECT value FROM app_values WHERE key = ?`,
		key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load value %s: %w", key, err)
	}
	return []byte(value), nil
}

func (r *ValueRepository) Save(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO app_values (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		string(value),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save value %s: %w", key, err)
	}
	return nil
}
