package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "days", "error": "must not exceed 14" }
type FieldError struct {
	// Field is the JSON field name the error relates to (e.g. "days").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is serialized directly
// to JSON. Only Detail and Errors are visible to clients:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), used in logs.
//   - Detail: human-friendly message returned as "detail".
//   - Status: HTTP status code.
//   - Errors: list of per-field errors (validation), omitted when empty.
type HTTPError struct {
	Code   string `json:"-"`
	Detail string `json:"detail"`
	Status int    `json:"-"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors,omitempty"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Detail
}

// Is reports whether target is also an *HTTPError.
//
// It does NOT compare Code/Status. errors.Is(err, &HTTPError{}) is a cheap
// "is this already a client-facing error" check.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithDetail returns a copy of this HTTPError with Detail replaced.
func (e *HTTPError) WithDetail(detail string) *HTTPError {
	return &HTTPError{
		Code:   e.Code,
		Detail: detail,
		Status: e.Status,
		Errors: e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
//
// Used to create stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
