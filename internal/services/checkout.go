package services

import (
	"context"
	"log/slog"
	"time"

	"classregistration/internal/domain"
)

const msgCheckoutFailed = "Failed to create checkout session"

type checkoutService struct {
	provider       domain.CheckoutSessionProvider
	baseURL        string
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewCheckoutService creates a CheckoutService. baseURL is the public origin without a
// trailing slash.
func NewCheckoutService(provider domain.CheckoutSessionProvider, baseURL string, logger *slog.Logger, timeout time.Duration) domain.CheckoutService {
	return &checkoutService{
		provider:       provider,
		baseURL:        baseURL,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// ClassLineItem is the single line sold through hosted checkout.
func ClassLineItem() domain.CheckoutLineItem {
	return domain.CheckoutLineItem{
		Name:        domain.ClassProductName,
		Description: domain.ClassProductDetail,
		Currency:    domain.ClassCurrency,
		UnitAmount:  domain.ClassPriceCents,
		Quantity:    1,
	}
}

func (s *checkoutService) CreateCheckoutRedirect(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// {CHECKOUT_SESSION_ID} is substituted by the provider.
	url, err := s.provider.CreateSession(ctx, domain.CheckoutSessionRequest{
		LineItems:  []domain.CheckoutLineItem{ClassLineItem()},
		Mode:       domain.CheckoutModePayment,
		SuccessURL: s.baseURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.baseURL + "/",
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create checkout session", "err", err)
		return "", domain.NewWorkflowError(domain.KindUpstream, msgCheckoutFailed, err)
	}
	if url == "" {
		s.logger.ErrorContext(ctx, "checkout session has no redirect url")
		return "", domain.NewWorkflowError(domain.KindUpstream, msgCheckoutFailed, nil)
	}
	return url, nil
}
