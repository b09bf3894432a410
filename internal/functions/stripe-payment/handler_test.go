// internal/functions/stripe-payment/handler_test.go
package stripepayment

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/errors"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/logger"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/stripeapi"
)

// ==========================
// Mock Implementations
// ==========================

type MockIntentCreator struct {
	CreateFunc func(ctx context.Context, params *stripeapi.PaymentIntentParams) (*stripeapi.PaymentIntent, error)
	Calls      int
	LastParams *stripeapi.PaymentIntentParams
}

func (m *MockIntentCreator) CreatePaymentIntent(ctx context.Context, params *stripeapi.PaymentIntentParams) (*stripeapi.PaymentIntent, error) {
	m.Calls++
	m.LastParams = params
	if m.CreateFunc == nil {
		return &stripeapi.PaymentIntent{
			ID:           "pi_test_123",
			ClientSecret: "pi_test_123_secret_abc",
			Amount:       params.Amount,
			Currency:     params.Currency,
			Status:       "requires_payment_method",
		}, nil
	}
	return m.CreateFunc(ctx, params)
}

func testConfig() *Config {
	return &Config{
		SecretKey: "sk_test_stub",
		Timeout:   30 * time.Second,
	}
}

func TestHandler_Execute_ConvertsToMinorUnits(t *testing.T) {
	mock := &MockIntentCreator{}
	h := NewHandler(testConfig(), mock, logger.NewTestLogger(t))

	output, err := h.execute(context.Background(), &Input{Amount: 19.99})
	require.NoError(t, err)

	require.Equal(t, 1, mock.Calls)
	assert.Equal(t, int64(1999), mock.LastParams.Amount)
	assert.Equal(t, "usd", mock.LastParams.Currency)
	assert.Equal(t, "pi_test_123_secret_abc", output.ClientSecret)
	assert.Equal(t, "pi_test_123", output.PaymentIntentID)
}

func TestHandler_Execute_RoundsHalfUpNotTruncates(t *testing.T) {
	mock := &MockIntentCreator{}
	h := NewHandler(testConfig(), mock, logger.NewTestLogger(t))

	// 10.55 is not exactly representable; truncation would yield 1054.
	_, err := h.execute(context.Background(), &Input{Amount: 10.55})
	require.NoError(t, err)
	assert.Equal(t, int64(1055), mock.LastParams.Amount)
}

func TestHandler_Execute_NormalizesCurrencyAndEmail(t *testing.T) {
	mock := &MockIntentCreator{}
	h := NewHandler(testConfig(), mock, logger.NewTestLogger(t))

	_, err := h.execute(context.Background(), &Input{
		Amount:        5,
		Currency:      " EUR ",
		CustomerEmail: "shopper@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "eur", mock.LastParams.Currency)
	assert.Equal(t, "shopper@example.com", mock.LastParams.ReceiptEmail)
}

func TestHandler_Execute_MergesProvenanceMetadata(t *testing.T) {
	mock := &MockIntentCreator{}
	h := NewHandler(testConfig(), mock, logger.NewTestLogger(t))

	_, err := h.execute(context.Background(), &Input{
		Amount:   12,
		Metadata: map[string]string{"orderId": "order-501"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"source":  "storefront_checkout",
		"orderId": "order-501",
	}, mock.LastParams.Metadata)
}

func TestHandler_Execute_MissingSecretKeyFailsClosed(t *testing.T) {
	mock := &MockIntentCreator{}
	h := NewHandler(&Config{Timeout: 30 * time.Second}, mock, logger.NewTestLogger(t))

	_, err := h.execute(context.Background(), &Input{Amount: 10})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))
	// The processor must never be contacted without a credential.
	assert.Equal(t, 0, mock.Calls)
}

func TestHandler_Execute_ProcessorAPIErrorSurfaced(t *testing.T) {
	mock := &MockIntentCreator{
		CreateFunc: func(ctx context.Context, params *stripeapi.PaymentIntentParams) (*stripeapi.PaymentIntent, error) {
			return nil, &stripeapi.APIError{
				StatusCode: http.StatusPaymentRequired,
				Type:       "card_error",
				Code:       "card_declined",
				Message:    "Your card was declined.",
			}
		},
	}
	h := NewHandler(testConfig(), mock, logger.NewTestLogger(t))

	_, err := h.execute(context.Background(), &Input{Amount: 10})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPaymentProcessor))
	assert.Contains(t, err.Error(), "Your card was declined.")
}

// ==========================
// HTTP layer
// ==========================

func dispatch(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/functions/v1/stripe-payment", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ServeHTTP_Success(t *testing.T) {
	mock := &MockIntentCreator{}
	h := NewHandler(testConfig(), mock, logger.NewTestLogger(t))

	rec := dispatch(t, h, `{"amount": 19.99, "currency": "usd"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	// The response carries exactly the two client-facing fields.
	assert.JSONEq(t, `{"clientSecret":"pi_test_123_secret_abc","paymentIntentId":"pi_test_123"}`, rec.Body.String())
}

func TestHandler_ServeHTTP_RejectsInvalidAmount(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing amount", `{"currency": "usd"}`},
		{"zero amount", `{"amount": 0}`},
		{"negative amount", `{"amount": -5}`},
		{"non-numeric amount", `{"amount": "ten"}`},
		{"malformed body", `{"amount":`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := &MockIntentCreator{}
			h := NewHandler(testConfig(), mock, logger.NewTestLogger(t))

			rec := dispatch(t, h, tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
			assert.NotContains(t, rec.Body.String(), `"success"`)
			// Validation failures must not reach the processor.
			assert.Equal(t, 0, mock.Calls)
		})
	}
}

func TestHandler_ServeHTTP_MissingSecretReturns400(t *testing.T) {
	mock := &MockIntentCreator{}
	h := NewHandler(&Config{Timeout: 30 * time.Second}, mock, logger.NewTestLogger(t))

	rec := dispatch(t, h, `{"amount": 10}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"payment processor secret key is not configured"}`, rec.Body.String())
}
