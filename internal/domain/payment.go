package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// The single product this service sells.
const (
	ClassPriceCents    int64 = 4900
	ClassCurrency            = "usd"
	ClassProductName         = "New Retirement Rules™ Class Registration"
	ClassProductDetail       = "Includes admission for you and a guest, workbook, and essential reports valued at $1,439"
)

// PaymentStatusCompleted is the only status the simulated settlement produces.
const PaymentStatusCompleted = "completed"

// Payment is a recorded charge against a registration.
// swagger:model Payment
type Payment struct {
	ID             string    `json:"id"`
	RegistrationID string    `json:"registration_id"`
	AmountCents    int64     `json:"amount_cents"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	PaymentMethod  string    `json:"payment_method"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewPayment returns a completed payment for the class price. ID is set by the repository on create.
func NewPayment(registrationID, method string, createdAt time.Time) *Payment {
	return &Payment{
		RegistrationID: registrationID,
		AmountCents:    ClassPriceCents,
		Currency:       ClassCurrency,
		Status:         PaymentStatusCompleted,
		PaymentMethod:  method,
		CreatedAt:      createdAt,
	}
}

// PaymentInput is the payment form schema. Card details are validated for shape only and
// are never persisted.
type PaymentInput struct {
	RegistrationID  string `json:"registrationId" validate:"required"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Address         string `json:"address" validate:"required"`
	City            string `json:"city" validate:"required"`
	State           string `json:"state" validate:"required"`
	ZipCode         string `json:"zipCode" validate:"required"`
	CardType        string `json:"cardType" validate:"required"`
	CardNumber      string `json:"cardNumber" validate:"min=13,max=19"`
	ExpirationMonth string `json:"expirationMonth" validate:"required"`
	ExpirationYear  string `json:"expirationYear" validate:"required"`
	SecurityCode    string `json:"securityCode" validate:"min=3,max=4"`
}

// Normalize trims surrounding whitespace from every field.
func (in *PaymentInput) Normalize() {
	in.RegistrationID = strings.TrimSpace(in.RegistrationID)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.ZipCode = strings.TrimSpace(in.ZipCode)
	in.CardType = strings.TrimSpace(in.CardType)
	in.CardNumber = strings.TrimSpace(in.CardNumber)
	in.ExpirationMonth = strings.TrimSpace(in.ExpirationMonth)
	in.ExpirationYear = strings.TrimSpace(in.ExpirationYear)
	in.SecurityCode = strings.TrimSpace(in.SecurityCode)
}

// PaymentRepository defines storage operations for payments.
type PaymentRepository interface {
	// Create inserts the payment. Returns ErrDuplicatePayment when the registration already has one.
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	GetByRegistrationID(ctx context.Context, registrationID string) (*Payment, error)
}

// PaymentService is the second step of the funnel.
type PaymentService interface {
	// Pay records a payment and marks the registration paid. Returns the payment id; failures
	// are always *WorkflowError. A failed status update is not a failure for the caller.
	Pay(ctx context.Context, in PaymentInput) (string, error)
}

// formatCents renders minor units as a decimal amount, e.g. 4900 -> "49.00".
func formatCents(c int64) string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}
