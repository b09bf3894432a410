// internal/functions/notify-merchant/validation.go
package notifymerchant

import (
	"strings"

	apperrors "github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/errors"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/validation"
)

const requestSchemaJSON = `{
	"type": "object",
	"properties": {
		"orderId": {"type": "string"},
		"title":   {"type": "string"},
		"message": {"type": "string"}
	},
	"required": ["orderId", "title", "message"]
}`

var requestSchema = validation.MustCompile(requestSchemaJSON)

func validateInput(input *Input) error {
	if strings.TrimSpace(input.OrderID) == "" {
		return apperrors.NewValidationError("orderId is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return apperrors.NewValidationError("title is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		return apperrors.NewValidationError("message is required")
	}
	return nil
}
