package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/deppfellow/organizations/internal/errs"
)

func TestExtractValidationError(t *testing.T) {
	t.Run("custom errors", func(t *testing.T) {
		msg, fieldErrors := extractValidationError(CustomValidationErrors{{Field: "sname", Message: "is reserved"}})
		assert.Equal(t, "Validation failed", msg)
		assert.Equal(t, []errs.FieldError{{Field: "sname", Error: "is reserved"}}, fieldErrors)
	})

	t.Run("validator errors", func(t *testing.T) {
		payload := struct {
			Limit int `validate:"min=1"`
		}{}

		_, fieldErrors := extractValidationError(validator.New().Struct(payload))
		assert.Equal(t, []errs.FieldError{{Field: "limit", Error: "must be at least 1"}}, fieldErrors)
	})

	t.Run("other errors", func(t *testing.T) {
		_, fieldErrors := extractValidationError(errors.New("bad input"))
		assert.Equal(t, []errs.FieldError{{Field: "request", Error: "bad input"}}, fieldErrors)
	})
}
