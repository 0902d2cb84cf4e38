package contact_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/erikvaldez23/foundation-api/internal/common"
	"github.com/erikvaldez23/foundation-api/internal/contact"
)

func postContact(t *testing.T, h *contact.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Submit(rr, req)
	return rr
}

func TestSubmitRelaysMessage(t *testing.T) {
	outbox := &common.InMemoryEmail{}
	h := &contact.Handler{Sender: outbox, Recipient: "hello@foundation.org", Logger: zerolog.Nop()}

	rr := postContact(t, h, `{"name":"Jordan Reyes","email":"jordan@example.com","subject":"Volunteering","message":"I would love to help with the next event."}`)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, outbox.Outbox, 1)
	sent := outbox.Outbox[0]
	require.Equal(t, "hello@foundation.org", sent.To)
	require.Equal(t, "Volunteering", sent.Subject)
	require.Contains(t, sent.HTML, "jordan@example.com")
	require.Contains(t, sent.HTML, "I would love to help")
}

func TestSubmitDefaultsSubject(t *testing.T) {
	outbox := &common.InMemoryEmail{}
	h := &contact.Handler{Sender: outbox, Recipient: "hello@foundation.org", Logger: zerolog.Nop()}

	rr := postContact(t, h, `{"name":"Jordan Reyes","email":"jordan@example.com","message":"Just wanted to say thanks for the gallery night."}`)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, outbox.Outbox, 1)
	require.NotEmpty(t, outbox.Outbox[0].Subject)
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.com","message":"long enough message here"}`},
		{"bad email", `{"name":"Jo","email":"not-an-email","message":"long enough message here"}`},
		{"short message", `{"name":"Jo","email":"a@b.com","message":"hi"}`},
		{"not json", `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outbox := &common.InMemoryEmail{}
			h := &contact.Handler{Sender: outbox, Recipient: "hello@foundation.org", Logger: zerolog.Nop()}
			rr := postContact(t, h, tc.body)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			require.Empty(t, outbox.Outbox)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			require.NotEmpty(t, resp["error"])
		})
	}
}

func TestSubmitEscapesHTML(t *testing.T) {
	outbox := &common.InMemoryEmail{}
	h := &contact.Handler{Sender: outbox, Recipient: "hello@foundation.org", Logger: zerolog.Nop()}

	rr := postContact(t, h, `{"name":"<script>x</script>","email":"a@b.com","message":"hello there <b>friend</b>"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotContains(t, outbox.Outbox[0].HTML, "<script>")
}

type failingSender struct{}

func (failingSender) Send(string, string, string) error { return errors.New("smtp down") }

func TestSubmitSenderFailure(t *testing.T) {
	h := &contact.Handler{Sender: failingSender{}, Recipient: "hello@foundation.org", Logger: zerolog.Nop()}
	rr := postContact(t, h, `{"name":"Jo","email":"a@b.com","message":"long enough message here"}`)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "Unable to send message", resp["error"])
}

func TestSubmitUnconfigured(t *testing.T) {
	h := &contact.Handler{Logger: zerolog.Nop()}
	rr := postContact(t, h, `{"name":"Jo","email":"a@b.com","message":"long enough message here"}`)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
