package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// PaymentConfirmationEmailData holds data for the payment confirmation email.
type PaymentConfirmationEmailData struct {
	Email        string
	FirstName    string
	GuestName    string
	PaymentID    string
	AmountCents  int64
	EventDate    string
	EventTime    string
	LocationName string
	Address      string
}

// Amount formats AmountCents as dollars, e.g. "49.00".
func (d PaymentConfirmationEmailData) Amount() string {
	return formatCents(d.AmountCents)
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendPaymentConfirmation(ctx context.Context, data *PaymentConfirmationEmailData) error
}
