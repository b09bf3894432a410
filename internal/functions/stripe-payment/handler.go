// internal/functions/stripe-payment/handler.go
package stripepayment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strings"

	apperrors "github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/errors"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/httpx"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/logger"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/metrics"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/stripeapi"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/validation"
)

const FunctionName = "stripe-payment"

// IntentCreator is the slice of the processor client this handler uses.
type IntentCreator interface {
	CreatePaymentIntent(ctx context.Context, params *stripeapi.PaymentIntentParams) (*stripeapi.PaymentIntent, error)
}

type Handler struct {
	config *Config
	stripe IntentCreator
	logger logger.Logger
}

func NewHandler(config *Config, stripe IntentCreator, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		stripe: stripe,
		logger: log.WithFields(map[string]interface{}{"function": FunctionName}),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.PaymentError(w, apperrors.NewValidationError("unable to read request body"))
		return
	}

	if err := validation.ValidateBody(requestSchema, body); err != nil {
		httpx.PaymentError(w, err)
		return
	}

	var input Input
	if err := json.Unmarshal(body, &input); err != nil {
		httpx.PaymentError(w, apperrors.NewValidationError("request body must be valid JSON"))
		return
	}

	if err := validateInput(&input); err != nil {
		httpx.PaymentError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.PaymentIntents.WithLabelValues("error").Inc()
		h.logger.Error("payment intent creation failed", map[string]interface{}{
			"error": err.Error(),
		})
		httpx.PaymentError(w, err)
		return
	}

	metrics.PaymentIntents.WithLabelValues("success").Inc()
	httpx.JSON(w, http.StatusOK, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	// Fail closed before touching the processor; the message names the
	// setting, never its value.
	if h.config.SecretKey == "" {
		return nil, apperrors.NewConfigurationError("payment processor secret key is not configured")
	}

	currency := strings.ToLower(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	metadata := map[string]string{provenanceKey: provenanceTag}
	for k, v := range input.Metadata {
		metadata[k] = v
	}

	intent, err := h.stripe.CreatePaymentIntent(ctx, &stripeapi.PaymentIntentParams{
		Amount:       int64(math.Round(input.Amount * 100)),
		Currency:     currency,
		ReceiptEmail: input.CustomerEmail,
		Metadata:     metadata,
	})
	if err != nil {
		var apiErr *stripeapi.APIError
		if errors.As(err, &apiErr) {
			return nil, apperrors.NewPaymentProcessorError(apiErr.Message, apiErr)
		}
		return nil, apperrors.NewPaymentProcessorError("payment processor request failed", err)
	}

	h.logger.Info("payment intent created", map[string]interface{}{
		"paymentIntentId": intent.ID,
		"currency":        currency,
	})

	return &Output{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}
