package types

import "fmt"

// ErrorCode identifies a templee error.
type ErrorCode string

// Error codes. Template expansion and collection queries never produce
// errors; these only cover loading records and parsing CLI query steps.
const (
	// L01xx: record loading errors
	ErrUnsupportedFormat ErrorCode = "L0101"
	ErrReadFailed        ErrorCode = "L0102"
	ErrDecodeFailed      ErrorCode = "L0103"
	ErrNotARecord        ErrorCode = "L0104"

	// C01xx: query step errors
	ErrInvalidSlice   ErrorCode = "C0101"
	ErrInvalidIndex   ErrorCode = "C0102"
	ErrMissingWhere   ErrorCode = "C0103"
	ErrMissingSource  ErrorCode = "C0104"
	ErrConflictingArg ErrorCode = "C0105"
	ErrUnknownStep    ErrorCode = "C0106"
	ErrMissingArg     ErrorCode = "C0107"
)

// Error represents a structured templee error.
type Error struct {
	Code    ErrorCode
	Message string
	Source  string
	Err     error
}

// NewError creates a new templee error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Source != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Source)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithSource records the file or argument the error refers to.
func (e *Error) WithSource(source string) *Error {
	e.Source = source
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// Is reports whether target is a *Error with the same code, so callers can
// match with errors.Is(err, types.NewError(types.ErrDecodeFailed, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}
