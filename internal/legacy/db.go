// Package legacy provides read access to the old scraper database. Each
// legacy source owns a listings table and a scrape-dates table; rows are
// surfaced as generic column maps because every source has its own column
// set.
package legacy

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jobportal/legacy-migrate/internal/config"
)

// DB wraps a single connection to the legacy database. The migration is
// strictly sequential, so one connection is all it ever needs.
type DB struct {
	conn *pgx.Conn
}

// Connect opens and validates a connection to the legacy database.
// Callers treat a failure here as fatal.
func Connect(ctx context.Context, cfg *config.Config) (*DB, error) {
	conn, err := pgx.Connect(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("connect to legacy database at %s: %w", cfg.DBHost, err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("ping legacy database: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close releases the connection.
func (db *DB) Close(ctx context.Context) error {
	return db.conn.Close(ctx)
}
