// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
)

// Error kinds. Every error the domain raises unwraps to exactly one of
// these, so callers branch with errors.Is and never on message text.
var (
	ErrValidation    = errors.New("validation failed")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrNotFound      = errors.New("entity not found")
	ErrAuthorization = errors.New("authorization failed")
)

// ErrDuplicateKey is raised by storage adapters when a unique constraint
// rejects a write. Services translate it into ErrAlreadyExists.
var ErrDuplicateKey = errors.New("duplicate key")

type DomainError struct {
	Kind    error
	Entity  string
	Field   string
	Message string
}

func (e *DomainError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	case e.Entity != "":
		return fmt.Sprintf("%s: %s", e.Entity, e.Message)
	default:
		return e.Message
	}
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func ValidationError(field, message string) error {
	return &DomainError{
		Kind:    ErrValidation,
		Field:   field,
		Message: message,
	}
}

func AlreadyExistsError(entity, field, value string) error {
	return &DomainError{
		Kind:    ErrAlreadyExists,
		Entity:  entity,
		Field:   field,
		Message: fmt.Sprintf("%s with %s %q already exists", entity, field, value),
	}
}

func NotFoundError(entity, id string) error {
	return &DomainError{
		Kind:    ErrNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("%s %q not found", entity, id),
	}
}

func AuthorizationError(message string) error {
	return &DomainError{
		Kind:    ErrAuthorization,
		Message: message,
	}
}

// AsDomainError extracts the first DomainError in the chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsAuthorization(err error) bool {
	return errors.Is(err, ErrAuthorization)
}
