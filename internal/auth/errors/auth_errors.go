package autherrors

import (
	"net/http"

	"github.com/Berkayssy/leave-management-system/internal/shared/apperror"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; the two must be indistinguishable to the caller.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeInvalidCredentials,
		"Invalid credentials",
		http.StatusUnauthorized,
	)
	ErrMissingToken = apperror.New(
		apperror.CodeMissingToken,
		"Missing token",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeInvalidToken,
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeTokenExpired,
		"Token expired",
		http.StatusUnauthorized,
	)
	// ErrUserNotFound fires when a still-valid token binds to a user that no
	// longer resolves in the identity store. Surfaced as an invalid token so
	// the response does not reveal which accounts exist.
	ErrUserNotFound = apperror.New(
		apperror.CodeInvalidToken,
		"Invalid token",
		http.StatusUnauthorized,
	)
)
