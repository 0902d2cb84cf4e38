package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPIntentClient talks to the donation intent endpoint over HTTP.
type HTTPIntentClient struct {
	BaseURL string
	Client  *http.Client
}

type intentRequestBody struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
}

type intentResponseBody struct {
	ClientSecret string `json:"clientSecret"`
	Error        string `json:"error"`
}

// CreateIntent posts the amount to the donation service and returns the
// client secret. Failures are surfaced immediately and never retried here.
func (c HTTPIntentClient) CreateIntent(ctx context.Context, amount float64, currency string) (string, error) {
	body, err := json.Marshal(intentRequestBody{Amount: amount, Currency: currency})
	if err != nil {
		return "", err
	}
	url := strings.TrimRight(c.BaseURL, "/") + "/api/create-payment-intent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var decoded intentResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode intent response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if strings.TrimSpace(decoded.Error) != "" {
			return "", errors.New(decoded.Error)
		}
		return "", fmt.Errorf("intent request failed with status %d", resp.StatusCode)
	}
	if strings.TrimSpace(decoded.ClientSecret) == "" {
		return "", errors.New("intent response missing client secret")
	}
	return decoded.ClientSecret, nil
}
