package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"classregistration/internal/domain"

	"github.com/google/uuid"
)

type paymentRepository struct {
	DB *sql.DB
}

// NewPaymentRepository returns a domain.PaymentRepository implemented with Postgres.
func NewPaymentRepository(db *sql.DB) domain.PaymentRepository {
	return &paymentRepository{DB: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO payments (id, registration_id, amount_cents, currency, status, payment_method, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, p.RegistrationID, p.AmountCents, p.Currency, p.Status, p.PaymentMethod, p.CreatedAt,
	)
	if err != nil {
		if hasCode(err, uniqueViolation) {
			return domain.ErrDuplicatePayment
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	p.ID = id
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *paymentRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.Payment, error) {
	return r.getOne(ctx, `WHERE registration_id = $1`, registrationID)
}

func (r *paymentRepository) getOne(ctx context.Context, where string, arg string) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, registration_id, amount_cents, currency, status, payment_method, created_at
		 FROM payments `+where, arg).
		Scan(&p.ID, &p.RegistrationID, &p.AmountCents, &p.Currency, &p.Status, &p.PaymentMethod, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || hasCode(err, invalidTextRepresentation) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
