package services

import (
	"context"
	"fmt"
	"log/slog"

	"classregistration/internal/domain"
)

// PaymentConfirmationTemplate is the template set used for payment receipts.
const PaymentConfirmationTemplate = "payment_confirmation"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendPaymentConfirmation sends the receipt for a recorded payment.
func (s *emailService) SendPaymentConfirmation(ctx context.Context, data *domain.PaymentConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("payment confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(PaymentConfirmationTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", PaymentConfirmationTemplate, err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send payment confirmation: %w", err)
	}
	s.logger.InfoContext(ctx, "payment confirmation sent", "payment_id", data.PaymentID)
	return nil
}
