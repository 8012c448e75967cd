package domain

import "context"

// CheckoutLineItem is one product line on a hosted checkout page.
type CheckoutLineItem struct {
	Name        string
	Description string
	Currency    string
	UnitAmount  int64
	Quantity    int64
}

// CheckoutMode is the hosted checkout payment mode.
type CheckoutMode string

const CheckoutModePayment CheckoutMode = "payment"

// CheckoutSessionRequest describes a hosted checkout session to create.
type CheckoutSessionRequest struct {
	LineItems  []CheckoutLineItem
	Mode       CheckoutMode
	SuccessURL string
	CancelURL  string
}

// CheckoutSessionProvider creates sessions with an external hosted-payment provider and
// returns the URL to redirect the browser to.
type CheckoutSessionProvider interface {
	CreateSession(ctx context.Context, req CheckoutSessionRequest) (url string, err error)
}

// CheckoutService is the alternate purchase path. It does not touch registrations or payments.
type CheckoutService interface {
	CreateCheckoutRedirect(ctx context.Context) (string, error)
}
