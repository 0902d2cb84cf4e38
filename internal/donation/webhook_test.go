package donation_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/erikvaldez23/foundation-api/internal/donation"
)

const webhookSecret = "whsec_test_secret"

func signedRequest(t *testing.T, payload string) *http.Request {
	t.Helper()
	now := time.Now()
	sig := webhook.ComputeSignature(now, []byte(payload), webhookSecret)
	header := fmt.Sprintf("t=%d,v1=%x", now.Unix(), sig)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", header)
	return req
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	wh := donation.Webhook{Secret: webhookSecret, Logger: zerolog.Nop()}
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	rr := httptest.NewRecorder()
	wh.Handle(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWebhookAcceptsSucceededIntent(t *testing.T) {
	payload := fmt.Sprintf(`{"id":"evt_1","api_version":%q,"type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","amount":5000,"currency":"usd"}}}`, stripe.APIVersion)
	wh := donation.Webhook{Secret: webhookSecret, Logger: zerolog.Nop()}
	rr := httptest.NewRecorder()
	wh.Handle(rr, signedRequest(t, payload))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "received")
}

func TestWebhookIgnoresUnrelatedEvents(t *testing.T) {
	payload := fmt.Sprintf(`{"id":"evt_2","api_version":%q,"type":"charge.refunded","data":{"object":{}}}`, stripe.APIVersion)
	wh := donation.Webhook{Secret: webhookSecret, Logger: zerolog.Nop()}
	rr := httptest.NewRecorder()
	wh.Handle(rr, signedRequest(t, payload))
	require.Equal(t, http.StatusOK, rr.Code)
}
