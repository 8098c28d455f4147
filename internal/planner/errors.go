package planner

import (
	"errors"
	"fmt"
)

// Result codes for failed operations
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeInvariant  = "INVARIANT_VIOLATION"
	CodeInternal   = "INTERNAL_ERROR"
)

// ValidationError rejects a request before any planning happens
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvariantError rejects a mutation that would break the trip structure
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return e.Message
}

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func invariantf(format string, args ...any) error {
	return &InvariantError{Message: fmt.Sprintf(format, args...)}
}

// codeFor maps an error to its result code
func codeFor(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return CodeValidation
	}
	var ie *InvariantError
	if errors.As(err, &ie) {
		return CodeInvariant
	}
	return CodeInternal
}
