package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"classregistration/internal/domain"
)

// User-facing workflow messages. Internal causes are logged, never returned.
const (
	msgInvalidRegistration = "Invalid form data. Please check your inputs."
	msgRegisterFailed      = "Failed to register. Please try again."
	msgRegistrationMissing = "Registration not found."
	msgRegistrationLoad    = "Failed to load registration. Please try again."
)

// Validator checks an input struct against its schema.
type Validator interface {
	Struct(v any) error
}

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	events           domain.EventLookupService
	validator        Validator
	logger           *slog.Logger
	contextTimeout   time.Duration
	now              func() time.Time
}

// NewRegistrationService creates a RegistrationService.
func NewRegistrationService(
	registrationRepo domain.RegistrationRepository,
	events domain.EventLookupService,
	validator Validator,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		events:           events,
		validator:        validator,
		logger:           logger,
		contextTimeout:   timeout,
		now:              time.Now,
	}
}

func (s *registrationService) Register(ctx context.Context, in domain.RegistrationInput) (string, error) {
	in.Normalize()
	if err := s.validator.Struct(in); err != nil {
		s.logger.InfoContext(ctx, "registration rejected", "err", err)
		return "", domain.NewWorkflowError(domain.KindValidation, msgInvalidRegistration, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// The event reference is not checked: fallback events are registrable too.
	reg := domain.NewRegistration(in, s.now().UTC())
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		s.logger.ErrorContext(ctx, "failed to store registration", "event_id", in.EventID, "err", err)
		return "", domain.NewWorkflowError(domain.KindPersistence, msgRegisterFailed, err)
	}
	s.logger.InfoContext(ctx, "registration created", "registration_id", reg.ID, "event_id", reg.EventID)
	return reg.ID, nil
}

func (s *registrationService) GetWithEvent(ctx context.Context, id string) (*domain.RegistrationWithEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewWorkflowError(domain.KindNotFound, msgRegistrationMissing, domain.ErrNotFound)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	reg, err := s.registrationRepo.GetByID(lookupCtx, id)
	cancel()
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewWorkflowError(domain.KindNotFound, msgRegistrationMissing, err)
		}
		s.logger.ErrorContext(ctx, "failed to load registration", "registration_id", id, "err", err)
		return nil, domain.NewWorkflowError(domain.KindPersistence, msgRegistrationLoad, err)
	}
	return &domain.RegistrationWithEvent{
		Registration: reg,
		Event:        s.events.GetByID(ctx, reg.EventID),
	}, nil
}
