package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/errors"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"userId":  {"type": "string", "minLength": 1},
		"title":   {"type": "string", "minLength": 1},
		"message": {"type": "string", "minLength": 1}
	},
	"required": ["userId", "title", "message"]
}`

func TestValidateBody(t *testing.T) {
	schema := MustCompile(testSchema)

	err := ValidateBody(schema, []byte(`{"userId":"u1","title":"t","message":"m"}`))
	assert.NoError(t, err)

	err = ValidateBody(schema, []byte(`{"title":"t","message":"m"}`))
	assert.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Contains(t, err.Error(), "userId")

	err = ValidateBody(schema, []byte(`not json`))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestMustCompile_PanicsOnBadSchema(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile(`{"type": 42}`)
	})
}
