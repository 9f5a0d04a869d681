package visualization

import "errors"

// Sentinel errors for the visualization resource. Use errors.Is() to check these.
var (
	// ErrInvalidInput indicates a payload failed schema validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates no record matches the requested identifier.
	ErrNotFound = errors.New("visualization not found")

	// ErrStorage indicates the document store was unreachable or rejected the operation.
	ErrStorage = errors.New("storage failure")
)

// ValidationError describes why a payload was rejected. It matches
// ErrInvalidInput under errors.Is.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
