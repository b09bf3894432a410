// internal/functions/stripe-payment/models.go
package stripepayment

// Input is the checkout request body. Amount is in major currency
// units; conversion to integer minor units happens here, never in the
// caller.
type Input struct {
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency,omitempty"`
	CustomerEmail string            `json:"customerEmail,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Output is the only data safe to hand back to an untrusted caller:
// the client secret for completing the payment and the intent id.
type Output struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

const (
	defaultCurrency = "usd"

	// provenanceTag marks intents created through this checkout channel
	// in the processor dashboard.
	provenanceKey = "source"
	provenanceTag = "storefront_checkout"
)
