package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"classregistration/internal/domain"

	"github.com/google/uuid"
)

type reconciliationRepository struct {
	DB *sql.DB
}

// NewReconciliationRepository returns a domain.ReconciliationRepository implemented with Postgres.
func NewReconciliationRepository(db *sql.DB) domain.ReconciliationRepository {
	return &reconciliationRepository{DB: db}
}

const reconciliationColumns = `id, payment_id, registration_id, reason, attempts, resolved_at, created_at, updated_at`

func scanReconciliation(s rowScanner) (*domain.PaymentReconciliation, error) {
	rec := &domain.PaymentReconciliation{}
	var resolved sql.NullTime
	if err := s.Scan(&rec.ID, &rec.PaymentID, &rec.RegistrationID, &rec.Reason, &rec.Attempts, &resolved, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if resolved.Valid {
		rec.ResolvedAt = &resolved.Time
	}
	return rec, nil
}

func (r *reconciliationRepository) Create(ctx context.Context, rec *domain.PaymentReconciliation) error {
	id := uuid.NewString()
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO payment_reconciliations (id, payment_id, registration_id, reason, attempts, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (registration_id) WHERE resolved_at IS NULL DO NOTHING`,
		id, rec.PaymentID, rec.RegistrationID, rec.Reason, rec.Attempts, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment reconciliation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert payment reconciliation: %w", err)
	}
	if n == 0 {
		return domain.ErrReconciliationOpen
	}
	rec.ID = id
	return nil
}

func (r *reconciliationRepository) GetByID(ctx context.Context, id string) (*domain.PaymentReconciliation, error) {
	rec, err := scanReconciliation(r.DB.QueryRowContext(ctx,
		`SELECT `+reconciliationColumns+` FROM payment_reconciliations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || hasCode(err, invalidTextRepresentation) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *reconciliationRepository) ListOpen(ctx context.Context, params domain.PaginationParams) ([]*domain.PaymentReconciliation, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payment_reconciliations WHERE resolved_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count open reconciliations: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+reconciliationColumns+`
		 FROM payment_reconciliations
		 WHERE resolved_at IS NULL
		 ORDER BY created_at ASC
		 LIMIT $1 OFFSET $2`, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list open reconciliations: %w", err)
	}
	defer rows.Close()

	recs := []*domain.PaymentReconciliation{}
	for rows.Next() {
		rec, err := scanReconciliation(rows)
		if err != nil {
			return nil, 0, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

func (r *reconciliationRepository) RecordAttempt(ctx context.Context, id, reason string, at time.Time) error {
	return r.execOpen(ctx,
		`UPDATE payment_reconciliations
		 SET attempts = attempts + 1, reason = $2, updated_at = $3
		 WHERE id = $1 AND resolved_at IS NULL`, id, reason, at)
}

func (r *reconciliationRepository) MarkResolved(ctx context.Context, id string, at time.Time) error {
	return r.execOpen(ctx,
		`UPDATE payment_reconciliations
		 SET attempts = attempts + 1, resolved_at = $2, updated_at = $2
		 WHERE id = $1 AND resolved_at IS NULL`, id, at)
}

// execOpen runs an update against an open record and maps zero affected rows to ErrNotFound.
func (r *reconciliationRepository) execOpen(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update payment reconciliation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update payment reconciliation: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
