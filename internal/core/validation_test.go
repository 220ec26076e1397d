// AngelaMos | 2026
// validation_test.go

package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name"  validate:"required,max=5"`
	Email string `json:"email" validate:"required,email"`
	Due   string `json:"due"   validate:"omitempty,datetime=2006-01-02"`
}

func TestFormatValidationErrorUsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Struct(sampleRequest{Name: "toolong", Email: "nope", Due: "31/12/2025"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "name must be at most 5")
	assert.Contains(t, msg, "email must be a valid email address")
	assert.Contains(t, msg, "due must be a date formatted as 2006-01-02")
	assert.NotContains(t, msg, "Name")
}

func TestFormatValidationErrorPassthrough(t *testing.T) {
	assert.Equal(t, "boom", FormatValidationError(errors.New("boom")))
}
