package donation

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/erikvaldez23/foundation-api/internal/common"
	"github.com/erikvaldez23/foundation-api/internal/obs"
)

const maxWebhookBodyBytes = int64(65536)

// Webhook receives Stripe event notifications for donation intents.
//
// Nothing here moves money: confirmation happens in the donor's browser
// against Stripe. The webhook only closes the observability loop, recording
// terminal intent outcomes into logs and metrics.
type Webhook struct {
	Secret    string
	Replay    *redis.Client
	ReplayTTL time.Duration
	Logger    zerolog.Logger
}

// Handle verifies the Stripe-Signature header and processes the event.
func (wh Webhook) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		common.FlatError(w, http.StatusBadRequest, "unable to read body")
		return
	}
	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), wh.Secret)
	if err != nil {
		wh.count("unknown", "invalid_signature")
		common.FlatError(w, http.StatusBadRequest, "invalid signature")
		return
	}
	if wh.seenBefore(r, event.ID) {
		wh.count(string(event.Type), "replay")
		common.JSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			wh.count(string(event.Type), "decode_error")
			common.FlatError(w, http.StatusBadRequest, "malformed event payload")
			return
		}
		outcome := "succeeded"
		if event.Type == "payment_intent.payment_failed" {
			outcome = "failed"
		}
		wh.Logger.Info().
			Str("event_id", event.ID).
			Str("intent_id", intent.ID).
			Int64("amount", intent.Amount).
			Str("currency", string(intent.Currency)).
			Str("outcome", outcome).
			Msg("donation_intent_settled")
		wh.count(string(event.Type), outcome)
	default:
		wh.count(string(event.Type), "ignored")
	}

	common.JSON(w, http.StatusOK, map[string]bool{"received": true})
}

// seenBefore registers the event ID in Redis and reports whether it was
// already processed. Without Redis every event is treated as fresh.
func (wh Webhook) seenBefore(r *http.Request, eventID string) bool {
	if wh.Replay == nil || eventID == "" {
		return false
	}
	ttl := wh.ReplayTTL
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	ok, err := wh.Replay.SetNX(r.Context(), "stripe:event:"+eventID, "seen", ttl).Result()
	if err != nil {
		// replay store failure should not drop a legitimate event
		return false
	}
	return !ok
}

func (wh Webhook) count(event, result string) {
	if obs.DonationWebhookTotal != nil {
		obs.DonationWebhookTotal.WithLabelValues(event, result).Inc()
	}
}
