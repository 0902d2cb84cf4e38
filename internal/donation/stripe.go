package donation

import (
	"context"
	"errors"
	"strings"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Stripe implements the Provider interface on top of the Stripe API.
// The underlying client is constructed once at startup and shared by
// every request; handlers never build their own.
type Stripe struct {
	API *client.API
}

// NewStripe builds a Stripe provider bound to the given secret key.
func NewStripe(secretKey string) Stripe {
	api := &client.API{}
	api.Init(secretKey, nil)
	return Stripe{API: api}
}

// CreateIntent opens a PaymentIntent with automatic payment-method
// selection and returns its client secret.
func (s Stripe) CreateIntent(ctx context.Context, req IntentRequest) (IntentResponse, error) {
	if s.API == nil {
		return IntentResponse{}, errors.New("stripe client not configured")
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if desc := strings.TrimSpace(req.Description); desc != "" {
		params.Description = stripe.String(desc)
	}
	intent, err := s.API.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && strings.TrimSpace(stripeErr.Msg) != "" {
			return IntentResponse{}, errors.New(stripeErr.Msg)
		}
		return IntentResponse{}, err
	}
	return IntentResponse{
		Provider:     "stripe",
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}
