// pkg/payments/client.go
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client invokes the deployed stripe-payment function over HTTP.
type Client struct {
	baseURL        string
	publishableKey string
	httpClient     *http.Client
}

// CreateIntentRequest mirrors the function's request body. Amount is
// in major currency units.
type CreateIntentRequest struct {
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency,omitempty"`
	CustomerEmail string            `json:"customerEmail,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// CreateIntentResponse carries the two values safe to hand to a
// checkout page.
type CreateIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// New constructs a Client for the function deployment at baseURL.
// An empty publishable key is a hard error rather than a deferred
// request failure.
func New(baseURL, publishableKey string) (*Client, error) {
	if strings.TrimSpace(publishableKey) == "" {
		return nil, fmt.Errorf("payments: publishable key is not configured")
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("payments: base URL is not configured")
	}
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		publishableKey: publishableKey,
		httpClient:     &http.Client{Timeout: defaultTimeout},
	}, nil
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// CreatePaymentIntent invokes the stripe-payment function and returns
// the client secret and intent id. A function-side failure surfaces as
// a plain error carrying the function's message.
func (c *Client) CreatePaymentIntent(ctx context.Context, req *CreateIntentRequest) (*CreateIntentResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("payments: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/functions/v1/stripe-payment", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("payments: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.publishableKey)
	httpReq.Header.Set("apikey", c.publishableKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payments: invoke function: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("payments: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, decodeFunctionError(resp.StatusCode, body)
	}

	var out CreateIntentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("payments: decode response: %w", err)
	}
	if out.ClientSecret == "" {
		return nil, fmt.Errorf("payments: response missing client secret")
	}
	return &out, nil
}

// decodeFunctionError flattens the function's {error} envelope into a
// plain error; an undecodable body falls back to the status code.
func decodeFunctionError(status int, body []byte) error {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return fmt.Errorf("payments: %s", envelope.Error)
	}
	return fmt.Errorf("payments: function returned status %d", status)
}
