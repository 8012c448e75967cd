package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"classregistration/internal/domain"
)

const (
	msgReconciliationMissing = "Reconciliation not found."
	msgReconciliationFailed  = "Failed to mark registration paid. Please try again."
)

type reconciliationService struct {
	reconciliationRepo domain.ReconciliationRepository
	registrationRepo   domain.RegistrationRepository
	logger             *slog.Logger
	contextTimeout     time.Duration
	now                func() time.Time
}

// NewReconciliationService creates a ReconciliationService.
func NewReconciliationService(
	reconciliationRepo domain.ReconciliationRepository,
	registrationRepo domain.RegistrationRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ReconciliationService {
	return &reconciliationService{
		reconciliationRepo: reconciliationRepo,
		registrationRepo:   registrationRepo,
		logger:             logger,
		contextTimeout:     timeout,
		now:                time.Now,
	}
}

func (s *reconciliationService) ListOpen(ctx context.Context, params domain.PaginationParams) ([]*domain.PaymentReconciliation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.reconciliationRepo.ListOpen(ctx, params)
}

// Retry re-runs the status update for a record. When the update fails again the attempt is
// recorded and a persistence error is returned; the record stays open.
func (s *reconciliationService) Retry(ctx context.Context, id string) (*domain.PaymentReconciliation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rec, err := s.reconciliationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewWorkflowError(domain.KindNotFound, msgReconciliationMissing, err)
		}
		return nil, domain.NewWorkflowError(domain.KindPersistence, msgReconciliationFailed, err)
	}
	if rec.ResolvedAt != nil {
		return rec, nil
	}

	now := s.now().UTC()
	if markErr := s.registrationRepo.MarkPaid(ctx, rec.RegistrationID, now); markErr != nil {
		s.logger.WarnContext(ctx, "reconciliation retry failed", "reconciliation_id", id, "registration_id", rec.RegistrationID, "err", markErr)
		if err := s.reconciliationRepo.RecordAttempt(ctx, id, markErr.Error(), now); err != nil {
			s.logger.ErrorContext(ctx, "failed to record reconciliation attempt", "reconciliation_id", id, "err", err)
		}
		return nil, domain.NewWorkflowError(domain.KindPersistence, msgReconciliationFailed, markErr)
	}
	if err := s.reconciliationRepo.MarkResolved(ctx, id, now); err != nil {
		return nil, domain.NewWorkflowError(domain.KindPersistence, msgReconciliationFailed, fmt.Errorf("resolve reconciliation: %w", err))
	}
	s.logger.InfoContext(ctx, "reconciliation resolved", "reconciliation_id", id, "registration_id", rec.RegistrationID)

	rec.Attempts++
	rec.ResolvedAt = &now
	rec.UpdatedAt = now
	return rec, nil
}
