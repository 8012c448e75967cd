package domain

import (
	"context"
	"strings"
	"time"
)

// RegistrationStatus is the payment state of a registration. It only ever moves pending -> paid.
type RegistrationStatus string

const (
	RegistrationPending RegistrationStatus = "pending"
	RegistrationPaid    RegistrationStatus = "paid"
)

// Registration is one attendee's intent to attend an event.
// swagger:model Registration
type Registration struct {
	ID        string             `json:"id"`
	EventID   string             `json:"event_id"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Address   string             `json:"address"`
	City      string             `json:"city"`
	State     string             `json:"state"`
	ZipCode   string             `json:"zip_code"`
	Phone     string             `json:"phone"`
	Email     string             `json:"email"`
	GuestName *string            `json:"guest_name"`
	Status    RegistrationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewRegistration builds a pending registration from validated input. An empty guest name is
// stored as absent. ID is set by the repository on create.
func NewRegistration(in RegistrationInput, createdAt time.Time) *Registration {
	var guest *string
	if in.GuestName != "" {
		g := in.GuestName
		guest = &g
	}
	return &Registration{
		EventID:   in.EventID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		ZipCode:   in.ZipCode,
		Phone:     in.Phone,
		Email:     in.Email,
		GuestName: guest,
		Status:    RegistrationPending,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// RegistrationInput is the registration form schema.
type RegistrationInput struct {
	EventID      string `json:"eventId" validate:"required"`
	FirstName    string `json:"firstName" validate:"min=2"`
	LastName     string `json:"lastName" validate:"min=2"`
	Address      string `json:"address" validate:"min=5"`
	City         string `json:"city" validate:"min=2"`
	State        string `json:"state" validate:"min=2"`
	ZipCode      string `json:"zipCode" validate:"min=5"`
	Phone        string `json:"phone" validate:"min=10"`
	Email        string `json:"email" validate:"email"`
	GuestName    string `json:"guestName"`
	ConfirmEvent bool   `json:"confirmEvent" validate:"eq=true"`
}

// Normalize trims surrounding whitespace. The email keeps the case it was typed in.
func (in *RegistrationInput) Normalize() {
	in.EventID = strings.TrimSpace(in.EventID)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.ZipCode = strings.TrimSpace(in.ZipCode)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.GuestName = strings.TrimSpace(in.GuestName)
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	// MarkPaid moves a pending registration to paid. A registration that is already paid is
	// left as is. Returns ErrNotFound when no registration has the id.
	MarkPaid(ctx context.Context, id string, at time.Time) error
}

// RegistrationWithEvent bundles a registration with the event it refers to.
type RegistrationWithEvent struct {
	Registration *Registration `json:"registration"`
	Event        *Event        `json:"event"`
}

// RegistrationService is the first step of the funnel.
type RegistrationService interface {
	// Register validates and stores a pending registration and returns its id. Failures are
	// always *WorkflowError.
	Register(ctx context.Context, in RegistrationInput) (string, error)
	GetWithEvent(ctx context.Context, id string) (*RegistrationWithEvent, error)
}
