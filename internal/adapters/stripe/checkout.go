// Package stripe creates hosted checkout sessions with Stripe.
package stripe

import (
	"context"
	"errors"
	"fmt"

	stripego "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	"classregistration/internal/domain"
)

type checkoutProvider struct {
	client session.Client
}

// NewCheckoutProvider returns a CheckoutSessionProvider using the live Stripe API.
func NewCheckoutProvider(secretKey string) domain.CheckoutSessionProvider {
	return NewCheckoutProviderWithBackend(secretKey, stripego.GetBackend(stripego.APIBackend))
}

// NewCheckoutProviderWithBackend is NewCheckoutProvider against an explicit backend.
func NewCheckoutProviderWithBackend(secretKey string, backend stripego.Backend) domain.CheckoutSessionProvider {
	return &checkoutProvider{client: session.Client{B: backend, Key: secretKey}}
}

func (p *checkoutProvider) CreateSession(ctx context.Context, req domain.CheckoutSessionRequest) (string, error) {
	params := &stripego.CheckoutSessionParams{
		Mode:       stripego.String(string(req.Mode)),
		SuccessURL: stripego.String(req.SuccessURL),
		CancelURL:  stripego.String(req.CancelURL),
	}
	params.Context = ctx
	for _, item := range req.LineItems {
		params.LineItems = append(params.LineItems, &stripego.CheckoutSessionLineItemParams{
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency: stripego.String(item.Currency),
				ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripego.String(item.Name),
					Description: stripego.String(item.Description),
				},
				UnitAmount: stripego.Int64(item.UnitAmount),
			},
			Quantity: stripego.Int64(item.Quantity),
		})
	}

	s, err := p.client.New(params)
	if err != nil {
		var serr *stripego.Error
		if errors.As(err, &serr) {
			return "", fmt.Errorf("stripe checkout session: %s (%s): %w", serr.Code, serr.Type, err)
		}
		return "", fmt.Errorf("stripe checkout session: %w", err)
	}
	return s.URL, nil
}
