package session

import (
	"context"
	"database/sql"
	"fmt"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// InitDatabase opens the session database and creates the schema when
// missing. The caller imports the sqlite driver.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS session (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init session schema: %w", err)
	}
	return db, nil
}

func (r *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteStore) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
