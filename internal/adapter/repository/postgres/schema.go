package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS parties (
		id         UUID PRIMARY KEY,
		kind       TEXT NOT NULL,
		age        INTEGER,
		discount   NUMERIC(5, 4),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id              UUID PRIMARY KEY,
		party_id        UUID NOT NULL REFERENCES parties (id),
		opening_minutes INTEGER NOT NULL,
		start_time      TIMESTAMPTZ NOT NULL,
		base_amount     NUMERIC(18, 4) NOT NULL,
		currency        CHAR(3) NOT NULL,
		vat_rate        NUMERIC(5, 4) NOT NULL,
		status          TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL,
		confirmed_at    TIMESTAMPTZ,
		cancelled_at    TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_party_created_idx ON bookings (party_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS bookings_status_start_idx ON bookings (status, start_time)`,
}

// EnsureSchema creates the tables used by the repositories when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return nil
}
