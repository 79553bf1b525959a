package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapBindingError turns a Gin binding failure into the contract's per-field
// 422 payload. Field names come from the json tags (see Init).
func MapBindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		v := &ValidationError{Fields: map[string]string{}}
		for _, fe := range verrs {
			v.Fields[fe.Field()] = messageForTag(fe)
		}
		return v
	}
	return New(CodeValidation, "Invalid request body", http.StatusUnprocessableEntity)
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "can't be blank"
	case "email":
		return "is not a valid email address"
	case "oneof":
		return "is not included in the list"
	case "min":
		return "is too short (minimum is " + fe.Param() + " characters)"
	case "eqfield":
		return "doesn't match " + formatFieldName(fe.Param())
	default:
		return "is invalid"
	}
}
