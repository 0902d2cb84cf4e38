package donation

import "context"

// IntentRequest captures the information required to open a payment intent
// with a provider. Amount is in minor currency units.
type IntentRequest struct {
	Amount      int64
	Currency    string
	Description string
}

// IntentResponse represents the minimal information returned by a provider
// when creating an intent. ClientSecret is the only field the browser needs
// to complete payment; it is never persisted or logged.
type IntentResponse struct {
	Provider     string
	IntentID     string
	ClientSecret string
}

// Provider abstracts the operations required from an upstream payment provider.
type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (IntentResponse, error)
}
