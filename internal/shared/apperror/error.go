package apperror

import "fmt"

// AppError is the error type every layer of the API speaks. Services return
// sentinel instances (see the per-module errors packages); handlers collapse
// them to HTTP via ToHTTP.
type AppError struct {
	Code       string // machine-stable kind, e.g. INVALID_CREDENTIALS
	Message    string // human-readable message surfaced to clients
	HTTPStatus int
	Err        error // wrapped cause, optional
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
