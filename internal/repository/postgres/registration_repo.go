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

type registrationRepository struct {
	DB *sql.DB
}

// NewRegistrationRepository returns a domain.RegistrationRepository implemented with Postgres.
func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO registrations (id, event_id, first_name, last_name, address, city, state, zip_code, phone, email, guest_name, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		id, reg.EventID, reg.FirstName, reg.LastName, reg.Address, reg.City, reg.State, reg.ZipCode,
		reg.Phone, reg.Email, reg.GuestName, string(reg.Status), reg.CreatedAt, reg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	reg.ID = id
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var guest sql.NullString
	var status string
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, event_id, first_name, last_name, address, city, state, zip_code, phone, email, guest_name, status, created_at, updated_at
		 FROM registrations
		 WHERE id = $1`, id).
		Scan(&reg.ID, &reg.EventID, &reg.FirstName, &reg.LastName, &reg.Address, &reg.City, &reg.State,
			&reg.ZipCode, &reg.Phone, &reg.Email, &guest, &status, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || hasCode(err, invalidTextRepresentation) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if guest.Valid {
		reg.GuestName = &guest.String
	}
	reg.Status = domain.RegistrationStatus(status)
	return reg, nil
}

func (r *registrationRepository) MarkPaid(ctx context.Context, id string, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE registrations SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		string(domain.RegistrationPaid), at, id, string(domain.RegistrationPending))
	if err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Nothing pending with that id: either already paid or missing.
	var status string
	err = r.DB.QueryRowContext(ctx, `SELECT status FROM registrations WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("read registration status: %w", err)
	}
	return nil
}
