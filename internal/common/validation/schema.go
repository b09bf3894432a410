// Package validation validates raw request bodies against per-function
// JSON Schemas before any business logic runs. Schema failures surface
// as validation errors from the shared taxonomy.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/errors"
)

// MustCompile compiles a JSON Schema document, panicking on a malformed
// schema. Schemas are package-level constants, so a failure here is a
// programming error caught by the first test run.
func MustCompile(schemaJSON string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid schema: %v", err))
	}
	return schema
}

// ValidateBody checks a raw JSON body against a compiled schema and
// returns a ValidationError listing every failed field.
func ValidateBody(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return apperrors.NewValidationError("request body must be valid JSON")
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, resErr := range result.Errors() {
		msgs = append(msgs, resErr.String())
	}
	return apperrors.NewValidationError(strings.Join(msgs, "; "))
}
