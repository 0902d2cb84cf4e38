package donation

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/erikvaldez23/foundation-api/internal/common"
	"github.com/erikvaldez23/foundation-api/internal/obs"
)

// Service translates validated donation amounts into provider-side payment
// intents. It is stateless: each request is independent and no intent is
// reused or deduplicated here.
type Service struct {
	Provider    Provider
	Currency    string
	Description string
}

// CreateIntent validates the request, converts the amount to minor units and
// performs exactly one provider call. Validation failures never reach the
// provider.
func (s *Service) CreateIntent(ctx context.Context, req Request) (IntentResponse, error) {
	var zero IntentResponse
	if s == nil || s.Provider == nil {
		return zero, common.NewAppError("NOT_CONFIGURED", "donation service not configured", http.StatusInternalServerError, nil)
	}
	ctx, span := otel.Tracer("donation.Service").Start(ctx, "DonationService.CreateIntent")
	defer span.End()

	currency := req.CurrencyOrDefault(s.Currency)
	start := time.Now()
	result := "error"
	defer func() {
		span.SetAttributes(
			attribute.String("donation.currency", currency),
			attribute.Float64("donation.intent.duration_ms", obs.DurationMillis(time.Since(start))),
			attribute.String("donation.intent.result", result),
		)
		if obs.DonationIntentTotal != nil {
			obs.DonationIntentTotal.WithLabelValues("stripe", currency, result).Inc()
		}
	}()

	minor, err := req.MinorUnits()
	if err != nil {
		result = "invalid"
		return zero, err
	}

	resp, err := s.Provider.CreateIntent(ctx, IntentRequest{
		Amount:      minor,
		Currency:    currency,
		Description: s.Description,
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return zero, common.NewAppError("PROVIDER_TIMEOUT", "payment provider timed out", http.StatusGatewayTimeout, err)
		}
		return zero, common.NewAppError("PROVIDER_ERROR", err.Error(), http.StatusInternalServerError, err)
	}
	if strings.TrimSpace(resp.ClientSecret) == "" {
		return zero, common.NewAppError("PROVIDER_ERROR", "provider returned no client secret", http.StatusInternalServerError, nil)
	}
	result = "success"
	return resp, nil
}
