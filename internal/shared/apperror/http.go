package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the transport-level view of any service error.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP collapses an error to its HTTP representation. Unknown errors map to
// a 500 without leaking internals.
func ToHTTP(err error) HTTPError {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return HTTPError{
			Status:  http.StatusUnprocessableEntity,
			Code:    CodeValidation,
			Message: "Validation failed",
			Details: vErr.Fields,
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: ErrInternal.Message,
	}
}
