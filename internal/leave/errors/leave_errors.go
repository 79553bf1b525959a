package leaveerrors

import (
	"net/http"

	"github.com/Berkayssy/leave-management-system/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave not found",
		http.StatusNotFound,
	)
	// ErrNotOwner covers edit/delete of another user's record, whatever role
	// the caller holds; admins do not bypass ownership.
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)
	ErrDecisionForbidden = apperror.New(
		apperror.CodeForbidden,
		"Requires manager or admin role",
		http.StatusForbidden,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"A decided leave can no longer be edited",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"Decision must be approved or rejected",
		http.StatusBadRequest,
	)
)

func InvalidDate(field string) error {
	return apperror.NewValidation(field, "is not a valid date, expected YYYY-MM-DD")
}

func EndBeforeStart() error {
	return apperror.NewValidation("end_date", "must be after start date")
}
