package database

import (
	"context"
	"fmt"
)

// schema bootstrap - dijalankan sekali saat startup, idempotent.
// CHECK constraint jadi jaring pengaman terakhir untuk invariant stok;
// jalur tulis normal tetap lewat protokol reservasi.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id                 UUID PRIMARY KEY,
		organizer_id       UUID NOT NULL REFERENCES users(id),
		name               TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		location           TEXT NOT NULL,
		event_date         TIMESTAMPTZ NOT NULL,
		ticket_price_cents BIGINT NOT NULL CHECK (ticket_price_cents >= 0),
		total_tickets      INTEGER NOT NULL CHECK (total_tickets >= 1),
		available_tickets  INTEGER NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL,
		CHECK (available_tickets >= 0 AND available_tickets <= total_tickets)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id                UUID PRIMARY KEY,
		user_id           UUID NOT NULL REFERENCES users(id),
		event_id          UUID NOT NULL REFERENCES events(id),
		quantity          INTEGER NOT NULL CHECK (quantity >= 1),
		total_price_cents BIGINT NOT NULL CHECK (total_price_cents >= 0),
		status            TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'cancelled')),
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_event_id ON bookings(event_id)`,
}

// Migrate menjalankan seluruh DDL schema.
func Migrate(ctx context.Context, db PgxIface) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
