// internal/functions/notify-user/validation.go
package notifyuser

import (
	"strings"

	apperrors "github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/errors"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/validation"
)

const requestSchemaJSON = `{
	"type": "object",
	"properties": {
		"userId":  {"type": "string"},
		"title":   {"type": "string"},
		"message": {"type": "string"},
		"type":    {"type": "string"}
	},
	"required": ["userId", "title", "message"]
}`

var requestSchema = validation.MustCompile(requestSchemaJSON)

func validateInput(input *Input) error {
	if strings.TrimSpace(input.UserID) == "" {
		return apperrors.NewValidationError("userId is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return apperrors.NewValidationError("title is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		return apperrors.NewValidationError("message is required")
	}
	return nil
}
