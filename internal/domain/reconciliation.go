package domain

import (
	"context"
	"time"
)

// PaymentReconciliation marks a payment whose registration is still pending because the
// status update failed. Operators repair these through ReconciliationService.
// swagger:model PaymentReconciliation
type PaymentReconciliation struct {
	ID             string     `json:"id"`
	PaymentID      string     `json:"payment_id"`
	RegistrationID string     `json:"registration_id"`
	Reason         string     `json:"reason"`
	Attempts       int        `json:"attempts"`
	ResolvedAt     *time.Time `json:"resolved_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewPaymentReconciliation builds an open reconciliation record from a partial failure.
func NewPaymentReconciliation(pf *PartialFailureError, createdAt time.Time) *PaymentReconciliation {
	reason := ""
	if pf.Err != nil {
		reason = pf.Err.Error()
	}
	return &PaymentReconciliation{
		PaymentID:      pf.PaymentID,
		RegistrationID: pf.RegistrationID,
		Reason:         reason,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

// ReconciliationRepository defines storage operations for reconciliation records.
type ReconciliationRepository interface {
	// Create inserts an open record. Returns ErrReconciliationOpen when the registration already
	// has one.
	Create(ctx context.Context, rec *PaymentReconciliation) error
	GetByID(ctx context.Context, id string) (*PaymentReconciliation, error)
	// ListOpen returns unresolved records, oldest first, plus the total number of open records.
	ListOpen(ctx context.Context, params PaginationParams) ([]*PaymentReconciliation, int, error)
	RecordAttempt(ctx context.Context, id, reason string, at time.Time) error
	MarkResolved(ctx context.Context, id string, at time.Time) error
}

// ReconciliationService exposes the partial-failure queue to operators.
type ReconciliationService interface {
	ListOpen(ctx context.Context, params PaginationParams) ([]*PaymentReconciliation, int, error)
	// Retry re-attempts marking the registration paid and resolves the record on success.
	Retry(ctx context.Context, id string) (*PaymentReconciliation, error)
}
