package validation

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/deppfellow/tripweaver/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"omitempty,max=14"`)
//   - Implement Validate() error that runs ordered checks and then Struct(req)
//   - Return CustomValidationErrors or validator.ValidationErrors
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for checks that cannot be expressed via validator tags or
// whose message is part of the API contract.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	if len(c) == 0 {
		return errs.DetailValidationFailed
	}
	return c[0].Message
}

var validate = newValidator()

// newValidator reports fields by their JSON name ("max_flight_hours"), not
// their Go name ("MaxFlightHours").
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct runs the struct-tag rules of v.
func Struct(v any) error {
	return validate.Struct(v)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the request struct from the body.
//  2. payload.Validate() applies validation rules.
//  3. Any failure is returned as *errs.HTTPError.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errs.NewRequestEntityTooLargeError()
		}
		return errs.NewBadRequestError(errs.DetailInvalidRequestBody, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		return toHTTPError(err)
	}

	return nil
}

func toHTTPError(err error) *errs.HTTPError {
	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		// The first failing check is the whole answer.
		return errs.NewBadRequestError(custom.Error(), nil, nil)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return errs.NewBadRequestError(errs.DetailValidationFailed, nil, extractFieldErrors(validationErrors))
	}

	return errs.ValidationError(err)
}

// extractFieldErrors converts validator.ValidationErrors into user-friendly messages.
func extractFieldErrors(validationErrors validator.ValidationErrors) []errs.FieldError {
	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))

	for _, err := range validationErrors {
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			// strings: minimum length, numbers: minimum value
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", err.Field(), err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", err.Field(), err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: err.Field(),
			Error: msg,
		})
	}

	return fieldErrors
}
