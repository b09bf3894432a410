// internal/functions/stripe-payment/validation.go
package stripepayment

import (
	apperrors "github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/errors"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/validation"
)

const requestSchemaJSON = `{
	"type": "object",
	"properties": {
		"amount":        {"type": "number"},
		"currency":      {"type": "string"},
		"customerEmail": {"type": "string"},
		"metadata": {
			"type": "object",
			"additionalProperties": {"type": "string"}
		}
	},
	"required": ["amount"]
}`

var requestSchema = validation.MustCompile(requestSchemaJSON)

func validateInput(input *Input) error {
	if input.Amount <= 0 {
		return apperrors.NewValidationError("amount must be greater than zero")
	}
	return nil
}
