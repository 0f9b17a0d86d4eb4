package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string  `json:"email" validate:"required,email"`
	Role  string  `json:"role" validate:"is-property-role"`
	Type  *string `json:"type" validate:"omitempty,is-report-type"`
}

func TestValidate_CollectsSortedFieldErrors(t *testing.T) {
	bad := "move-sideways"
	err := New().Validate(&sample{Email: "nope", Role: "squatter", Type: &bad})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Len(t, vErr.Errors, 3)
	assert.Equal(t, "email", vErr.Errors[0].Field)
	assert.Equal(t, "role", vErr.Errors[1].Field)
	assert.Equal(t, "type", vErr.Errors[2].Field)
	assert.Contains(t, vErr.Errors[1].Message, "landlord")
}

func TestValidate_EnumsAcceptKnownValues(t *testing.T) {
	moveOut := "move-out"
	assert.NoError(t, New().Validate(&sample{Email: "a@b.co", Role: "renter", Type: &moveOut}))
	assert.NoError(t, New().Validate(&sample{Email: "a@b.co"}))
}
