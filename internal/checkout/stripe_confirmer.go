package checkout

import (
	"context"
	"errors"
	"strings"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeConfirmer completes payment intents through the Stripe API for
// programmatic flows. Browser flows confirm directly against Stripe with
// the provider's embedded payment element; card data never passes through
// this process either way.
type StripeConfirmer struct {
	API *client.API
}

// Confirm resolves the intent identifier from the client secret and asks
// Stripe to confirm it. Card-class failures are wrapped in CardError so the
// controller can surface the provider message verbatim.
func (s StripeConfirmer) Confirm(ctx context.Context, clientSecret string) error {
	if s.API == nil {
		return errors.New("stripe client not configured")
	}
	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return err
	}
	params := &stripe.PaymentIntentConfirmParams{}
	params.AddExtra("client_secret", clientSecret)
	params.Context = ctx
	if _, err := s.API.PaymentIntents.Confirm(intentID, params); err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			if stripeErr.Type == stripe.ErrorTypeCard || stripeErr.Type == stripe.ErrorTypeInvalidRequest {
				msg := strings.TrimSpace(stripeErr.Msg)
				if msg == "" {
					msg = "Your card was declined."
				}
				return &CardError{Msg: msg}
			}
		}
		return err
	}
	return nil
}

// intentIDFromSecret extracts the PaymentIntent identifier from a client
// secret of the form "pi_xxx_secret_yyy".
func intentIDFromSecret(secret string) (string, error) {
	trimmed := strings.TrimSpace(secret)
	idx := strings.Index(trimmed, "_secret_")
	if trimmed == "" || idx <= 0 {
		return "", errors.New("malformed client secret")
	}
	return trimmed[:idx], nil
}
