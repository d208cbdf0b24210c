package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=admin handler"`
	Code  string `json:"code" validate:"omitempty,min=3"`
}

func TestValidator_Struct(t *testing.T) {
	v := New()

	t.Run("Valid", func(t *testing.T) {
		err := v.Struct(sample{Name: "a", Email: "a@rnit.rw"})
		assert.NoError(t, err)
	})

	t.Run("Aggregates every violation", func(t *testing.T) {
		err := v.Struct(sample{Email: "nope", Role: "root", Code: "x"})
		require.Error(t, err)

		var verr *Error
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 4)
		assert.Equal(t, "name", verr.Fields[0].Field)
		assert.Contains(t, err.Error(), "name is required")
		assert.Contains(t, err.Error(), "email must be a valid email address")
		assert.Contains(t, err.Error(), "role must be one of: admin, handler")
		assert.Contains(t, err.Error(), "code must be at least 3 characters")
		assert.True(t, IsValidation(err))
	})
}

func TestError_Err(t *testing.T) {
	var empty *Error
	assert.NoError(t, empty.Err())
	assert.NoError(t, (&Error{}).Err())

	e := &Error{}
	e.Add("status", "status is required")
	assert.EqualError(t, e.Err(), "status is required")
}
