// AngelaMos | 2026
// errors_test.go

package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		msg  string
	}{
		{
			name: "validation",
			err:  ValidationError("name", "is required"),
			kind: ErrValidation,
			msg:  "name: is required",
		},
		{
			name: "already exists",
			err:  AlreadyExistsError("project", "number", "P-1"),
			kind: ErrAlreadyExists,
			msg:  `number: project with number "P-1" already exists`,
		},
		{
			name: "not found",
			err:  NotFoundError("user", "u-1"),
			kind: ErrNotFound,
			msg:  `user: user "u-1" not found`,
		},
		{
			name: "authorization",
			err:  AuthorizationError("current password is incorrect"),
			kind: ErrAuthorization,
			msg:  "current password is incorrect",
		},
	}

	kinds := []error{ErrValidation, ErrAlreadyExists, ErrNotFound, ErrAuthorization}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, tt.err.Error())

			for _, k := range kinds {
				assert.Equal(t, k == tt.kind, errors.Is(tt.err, k), "kind %v", k)
			}
		})
	}
}

func TestAsDomainErrorThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create project: %w", ValidationError("due_date", "must be after start_date"))

	de, ok := AsDomainError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "due_date", de.Field)
	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsAlreadyExists(wrapped))
	assert.False(t, IsAuthorization(wrapped))

	denied := fmt.Errorf("change password: %w", AuthorizationError("current password is incorrect"))
	assert.True(t, IsAuthorization(denied))
	assert.False(t, IsValidation(denied))

	_, ok = AsDomainError(errors.New("plain"))
	assert.False(t, ok)
}

func TestDuplicateKeyIsNotADomainKind(t *testing.T) {
	assert.False(t, IsAlreadyExists(ErrDuplicateKey))

	_, ok := AsDomainError(ErrDuplicateKey)
	assert.False(t, ok)
}
