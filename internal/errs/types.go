package errs

import (
	"net/http"
)

// Client-facing messages shared between the middleware and the handlers.
const (
	DetailInternalServerError   = "Internal server error"
	DetailRequestEntityTooLarge = "Request entity too large"
	DetailInvalidContentType    = "Invalid content type. Only application/json is supported."
	DetailInvalidRequestBody    = "Invalid request body"
	DetailTooManyRequests       = "Too many requests"
	DetailValidationFailed      = "Validation failed"
)

func statusCode(status int) string {
	// http.StatusText(400) => "Bad Request" => "BAD_REQUEST"
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
func NewBadRequestError(detail string, code *string, errors []FieldError) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)

	// Caller-supplied codes are used as-is.
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:   formattedCode,
		Detail: detail,
		Status: http.StatusBadRequest,
		Errors: errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(detail string) *HTTPError {
	return &HTTPError{
		Code:   statusCode(http.StatusNotFound),
		Detail: detail,
		Status: http.StatusNotFound,
	}
}

// NewRequestEntityTooLargeError creates a 413 HTTPError for oversized bodies.
func NewRequestEntityTooLargeError() *HTTPError {
	return &HTTPError{
		Code:   statusCode(http.StatusRequestEntityTooLarge),
		Detail: DetailRequestEntityTooLarge,
		Status: http.StatusRequestEntityTooLarge,
	}
}

// NewTooManyRequestsError creates a 429 HTTPError used by the rate limiter.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:   statusCode(http.StatusTooManyRequests),
		Detail: DetailTooManyRequests,
		Status: http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// Detail is always the generic message; the real cause is only logged.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:   statusCode(http.StatusInternalServerError),
		Detail: DetailInternalServerError,
		Status: http.StatusInternalServerError,
	}
}

// ValidationError converts a generic validation error into a 400 Bad Request HTTPError.
//
//	return errs.ValidationError(err)
func ValidationError(err error) *HTTPError {
	return NewBadRequestError(DetailValidationFailed+": "+err.Error(), nil, nil)
}
