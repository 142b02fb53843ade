package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS order_archive (
	id          BIGSERIAL PRIMARY KEY,
	run_id      TEXT NOT NULL,
	order_id    INTEGER NOT NULL,
	order_date  TEXT NOT NULL,
	customer_id INTEGER NOT NULL,
	sum         NUMERIC(12, 2) NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS order_archive_items (
	id          BIGSERIAL PRIMARY KEY,
	archive_id  BIGINT NOT NULL REFERENCES order_archive (id),
	item_id     INTEGER NOT NULL,
	description TEXT NOT NULL,
	quantity    INTEGER NOT NULL,
	unit_price  NUMERIC(12, 2) NOT NULL
);

CREATE TABLE IF NOT EXISTS order_archive_payments (
	archive_id BIGINT PRIMARY KEY REFERENCES order_archive (id),
	method     TEXT NOT NULL,
	amount     NUMERIC(12, 2) NOT NULL,
	detail     TEXT NOT NULL
);`

// Store archives assembled orders in Postgres.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStoreFromDB wraps an existing connection.
func NewStoreFromDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the archive tables if they are missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create archive schema: %w", err)
	}
	return nil
}
