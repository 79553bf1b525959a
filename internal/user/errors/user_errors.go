package usererrors

import (
	"net/http"

	"github.com/Berkayssy/leave-management-system/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
)

// EmailTaken is a validation failure, not a conflict status: the signup
// contract reports duplicate emails per-field with a 422.
func EmailTaken() error {
	return apperror.NewValidation("email", "has already been taken")
}
