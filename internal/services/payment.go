package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"classregistration/internal/domain"
)

const (
	msgInvalidPayment = "Invalid payment data. Please check your inputs."
	msgPaymentFailed  = "Failed to process payment. Please try again."
)

type paymentService struct {
	registrationRepo   domain.RegistrationRepository
	paymentRepo        domain.PaymentRepository
	reconciliationRepo domain.ReconciliationRepository
	events             domain.EventLookupService
	emailService       domain.EmailService
	validator          Validator
	logger             *slog.Logger
	contextTimeout     time.Duration
	now                func() time.Time
}

// NewPaymentService creates a PaymentService. emailService may be nil, in which case no
// confirmation is sent.
func NewPaymentService(
	registrationRepo domain.RegistrationRepository,
	paymentRepo domain.PaymentRepository,
	reconciliationRepo domain.ReconciliationRepository,
	events domain.EventLookupService,
	emailService domain.EmailService,
	validator Validator,
	logger *slog.Logger,
	timeout time.Duration,
) domain.PaymentService {
	return &paymentService{
		registrationRepo:   registrationRepo,
		paymentRepo:        paymentRepo,
		reconciliationRepo: reconciliationRepo,
		events:             events,
		emailService:       emailService,
		validator:          validator,
		logger:             logger,
		contextTimeout:     timeout,
		now:                time.Now,
	}
}

func (s *paymentService) Pay(ctx context.Context, in domain.PaymentInput) (string, error) {
	in.Normalize()
	if err := s.validator.Struct(in); err != nil {
		s.logger.InfoContext(ctx, "payment rejected", "err", err)
		return "", domain.NewWorkflowError(domain.KindValidation, msgInvalidPayment, err)
	}

	dbCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.GetByID(dbCtx, in.RegistrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.NewWorkflowError(domain.KindNotFound, msgRegistrationMissing, err)
		}
		s.logger.ErrorContext(ctx, "failed to load registration for payment", "registration_id", in.RegistrationID, "err", err)
		return "", domain.NewWorkflowError(domain.KindPersistence, msgPaymentFailed, err)
	}

	// A repeated submission returns the payment already on record.
	existing, err := s.paymentRepo.GetByRegistrationID(dbCtx, reg.ID)
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "payment already recorded", "payment_id", existing.ID, "registration_id", reg.ID)
		if reg.Status == domain.RegistrationPending {
			s.markPaid(ctx, existing.ID, reg.ID)
		}
		return existing.ID, nil
	case !errors.Is(err, domain.ErrNotFound):
		s.logger.ErrorContext(ctx, "failed to check existing payment", "registration_id", reg.ID, "err", err)
		return "", domain.NewWorkflowError(domain.KindPersistence, msgPaymentFailed, err)
	}

	method := "card"
	if in.CardType != "" {
		method = in.CardType
	}
	payment := domain.NewPayment(reg.ID, method, s.now().UTC())
	if err := s.paymentRepo.Create(dbCtx, payment); err != nil {
		if !errors.Is(err, domain.ErrDuplicatePayment) {
			s.logger.ErrorContext(ctx, "failed to store payment", "registration_id", reg.ID, "err", err)
			return "", domain.NewWorkflowError(domain.KindPersistence, msgPaymentFailed, err)
		}
		// A concurrent submission won the insert.
		existing, getErr := s.paymentRepo.GetByRegistrationID(dbCtx, reg.ID)
		if getErr != nil {
			s.logger.ErrorContext(ctx, "failed to load concurrent payment", "registration_id", reg.ID, "err", getErr)
			return "", domain.NewWorkflowError(domain.KindPersistence, msgPaymentFailed, getErr)
		}
		return existing.ID, nil
	}
	s.logger.InfoContext(ctx, "payment recorded", "payment_id", payment.ID, "registration_id", reg.ID)

	s.markPaid(ctx, payment.ID, reg.ID)
	s.sendConfirmation(ctx, reg, payment)
	return payment.ID, nil
}

// markPaid moves the registration to paid. The update and the reconciliation write each run
// under their own deadline, detached from ctx. A failure is logged and queued for operators; it
// never fails the payment.
func (s *paymentService) markPaid(ctx context.Context, paymentID, registrationID string) {
	markCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.contextTimeout)
	err := s.registrationRepo.MarkPaid(markCtx, registrationID, s.now().UTC())
	cancel()
	if err == nil {
		return
	}
	pf := &domain.PartialFailureError{PaymentID: paymentID, RegistrationID: registrationID, Err: err}
	s.logger.ErrorContext(ctx, "registration status update failed", "payment_id", paymentID, "registration_id", registrationID, "err", pf)
	if s.reconciliationRepo == nil {
		return
	}

	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.contextTimeout)
	defer cancel()
	rec := domain.NewPaymentReconciliation(pf, s.now().UTC())
	switch err := s.reconciliationRepo.Create(recCtx, rec); {
	case err == nil:
	case errors.Is(err, domain.ErrReconciliationOpen):
		s.logger.InfoContext(ctx, "payment reconciliation already open", "payment_id", paymentID, "registration_id", registrationID)
	default:
		s.logger.ErrorContext(ctx, "failed to queue payment reconciliation", "payment_id", paymentID, "registration_id", registrationID, "err", err)
	}
}

func (s *paymentService) sendConfirmation(ctx context.Context, reg *domain.Registration, p *domain.Payment) {
	if s.emailService == nil {
		return
	}
	data := &domain.PaymentConfirmationEmailData{
		Email:       reg.Email,
		FirstName:   reg.FirstName,
		PaymentID:   p.ID,
		AmountCents: p.AmountCents,
	}
	if reg.GuestName != nil {
		data.GuestName = *reg.GuestName
	}
	if s.events != nil {
		if ev := s.events.GetByID(ctx, reg.EventID); ev != nil {
			data.EventDate = ev.Date.Format("Monday, January 2, 2006")
			data.EventTime = ev.Time
			data.LocationName = ev.LocationName
			data.Address = ev.Address + ", " + ev.City + ", " + ev.State + " " + ev.Zip
		}
	}
	if err := s.emailService.SendPaymentConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "failed to send payment confirmation", "payment_id", p.ID, "err", err)
	}
}
