package domain

import (
	"errors"
	"fmt"
)

// Localization keys for validation and lookup failures.
const (
	KeyListNameLength = "lists.error.name_length"
	KeyListNameUnique = "lists.error.name_unique"
	KeyTodoNameLength = "todos.error.name_length"
	KeyListNotFound   = "lists.error.not_found"
)

// ErrListNotFound reports that a list id does not resolve in the session.
var ErrListNotFound = errors.New("list not found")

// ValidationError is a user-facing rejection of submitted input.
type ValidationError struct {
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func lengthError(key, subject string) *ValidationError {
	return &ValidationError{
		Key:     key,
		Message: fmt.Sprintf("The %s must be between %d and %d characters.", subject, MinNameLength, MaxNameLength),
	}
}

// AsValidationError unwraps err into a ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) && verr != nil {
		return verr, true
	}
	return nil, false
}
