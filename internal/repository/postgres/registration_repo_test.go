package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"classregistration/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var registrationCols = []string{"id", "event_id", "first_name", "last_name", "address", "city", "state", "zip_code", "phone", "email", "guest_name", "status", "created_at", "updated_at"}

func newTestRegistration(guest *string) *domain.Registration {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Registration{
		EventID:   "1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Address:   "12 Main St",
		City:      "Grand Rapids",
		State:     "MI",
		ZipCode:   "49546",
		Phone:     "6165550100",
		Email:     "ada@example.com",
		GuestName: guest,
		Status:    domain.RegistrationPending,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestRegistrationRepository_Create(t *testing.T) {
	ctx := context.Background()
	guest := "Charles"

	tests := []struct {
		name    string
		reg     *domain.Registration
		mock    func(mock sqlmock.Sqlmock, reg *domain.Registration)
		wantErr bool
	}{
		{
			name: "success with guest",
			reg:  newTestRegistration(&guest),
			mock: func(mock sqlmock.Sqlmock, reg *domain.Registration) {
				mock.ExpectExec(`INSERT INTO registrations \(id, event_id, first_name, last_name, address, city, state, zip_code, phone, email, guest_name, status, created_at, updated_at\)`).
					WithArgs(sqlmock.AnyArg(), "1", "Ada", "Lovelace", "12 Main St", "Grand Rapids", "MI", "49546", "6165550100", "ada@example.com", "Charles", "pending", reg.CreatedAt, reg.UpdatedAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "absent guest is stored as NULL",
			reg:  newTestRegistration(nil),
			mock: func(mock sqlmock.Sqlmock, reg *domain.Registration) {
				mock.ExpectExec(`INSERT INTO registrations`).
					WithArgs(sqlmock.AnyArg(), "1", "Ada", "Lovelace", "12 Main St", "Grand Rapids", "MI", "49546", "6165550100", "ada@example.com", nil, "pending", reg.CreatedAt, reg.UpdatedAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "db error",
			reg:  newTestRegistration(nil),
			mock: func(mock sqlmock.Sqlmock, reg *domain.Registration) {
				mock.ExpectExec(`INSERT INTO registrations`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock, tt.reg)
			repo := NewRegistrationRepository(db)
			err = repo.Create(ctx, tt.reg)
			if tt.wantErr {
				require.Error(t, err)
				require.Empty(t, tt.reg.ID)
				return
			}
			require.NoError(t, err)
			require.Len(t, tt.reg.ID, 36)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("null guest name reads back as absent", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, first_name, last_name, address, city, state, zip_code, phone, email, guest_name, status, created_at, updated_at\s+FROM registrations\s+WHERE id = \$1`).
			WithArgs("reg-1").
			WillReturnRows(sqlmock.NewRows(registrationCols).
				AddRow("reg-1", "1", "Ada", "Lovelace", "12 Main St", "Grand Rapids", "MI", "49546", "6165550100", "ada@example.com", nil, "pending", at, at))

		reg, err := NewRegistrationRepository(db).GetByID(ctx, "reg-1")
		require.NoError(t, err)
		require.Equal(t, "reg-1", reg.ID)
		require.Nil(t, reg.GuestName)
		require.Equal(t, domain.RegistrationPending, reg.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("guest name", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id`).
			WithArgs("reg-1").
			WillReturnRows(sqlmock.NewRows(registrationCols).
				AddRow("reg-1", "1", "Ada", "Lovelace", "12 Main St", "Grand Rapids", "MI", "49546", "6165550100", "ada@example.com", "Charles", "paid", at, at))

		reg, err := NewRegistrationRepository(db).GetByID(ctx, "reg-1")
		require.NoError(t, err)
		require.NotNil(t, reg.GuestName)
		require.Equal(t, "Charles", *reg.GuestName)
		require.Equal(t, domain.RegistrationPaid, reg.Status)
	})

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"not found", sql.ErrNoRows, domain.ErrNotFound},
		{"malformed id", &pq.Error{Code: "22P02"}, domain.ErrNotFound},
		{"db error", sql.ErrConnDone, sql.ErrConnDone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`SELECT id, event_id`).WithArgs("x").WillReturnError(tt.err)

			_, err = NewRegistrationRepository(db).GetByID(ctx, "x")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegistrationRepository_MarkPaid(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "pending becomes paid",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE registrations SET status = \$1, updated_at = \$2 WHERE id = \$3 AND status = \$4`).
					WithArgs("paid", at, "reg-1", "pending").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "already paid is left as is",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE registrations`).
					WithArgs("paid", at, "reg-1", "pending").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT status FROM registrations WHERE id = \$1`).
					WithArgs("reg-1").
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("paid"))
			},
		},
		{
			name: "missing registration",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE registrations`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT status FROM registrations`).
					WithArgs("reg-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "update fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE registrations`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewRegistrationRepository(db).MarkPaid(ctx, "reg-1", at)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
