package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes the repositories map to domain errors.
const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// hasCode reports whether err is a Postgres error with the given SQLSTATE.
func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}

// ErrUnavailable marks a pool whose database did not answer while starting up.
var ErrUnavailable = errors.New("database unavailable")

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
	pingTimeout     = 5 * time.Second
)

// Connect opens a Postgres pool and pings it, retrying while the database starts up. When no
// ping succeeds the pool is still returned, with an error wrapping ErrUnavailable; it connects
// lazily once the database answers.
func Connect(ctx context.Context, databaseURL string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := pingWithRetry(ctx, db, logger, connectAttempts, connectBackoff); err != nil {
		if ctx.Err() != nil {
			db.Close()
			return nil, ctx.Err()
		}
		return db, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return db, nil
}

func pingWithRetry(ctx context.Context, db *sql.DB, logger *slog.Logger, attempts int, backoff time.Duration) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		logger.Warn("database ping failed", "attempt", attempt, "max_attempts", attempts, "err", err)
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("ping postgres after %d attempts: %w", attempts, err)
}

// MigrateWhenReady pings until the database answers, then runs the migrations. It returns when
// the migrations finish or ctx ends.
func MigrateWhenReady(ctx context.Context, db *sql.DB, logger *slog.Logger, interval time.Duration) error {
	for {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := db.PingContext(pingCtx)
		cancel()
		if err == nil {
			logger.Info("database reachable, running migrations")
			return RunMigrations(ctx, db)
		}
		logger.Warn("database still unavailable", "err", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		date DATE NOT NULL,
		location_name TEXT NOT NULL,
		address TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		zip TEXT NOT NULL,
		time TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_date ON events (date)`,
	`CREATE TABLE IF NOT EXISTS registrations (
		id UUID PRIMARY KEY,
		event_id TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		address TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		zip_code TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT NOT NULL,
		guest_name TEXT,
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'paid')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY,
		registration_id UUID NOT NULL REFERENCES registrations (id),
		amount_cents BIGINT NOT NULL,
		currency TEXT NOT NULL,
		status TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_payments_registration_id ON payments (registration_id)`,
	`CREATE TABLE IF NOT EXISTS payment_reconciliations (
		id UUID PRIMARY KEY,
		payment_id UUID NOT NULL REFERENCES payments (id),
		registration_id UUID NOT NULL REFERENCES registrations (id),
		reason TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		resolved_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payment_reconciliations_open ON payment_reconciliations (created_at) WHERE resolved_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_payment_reconciliations_open_registration ON payment_reconciliations (registration_id) WHERE resolved_at IS NULL`,
}

// RunMigrations creates the schema. Every statement is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
