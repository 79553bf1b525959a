package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Berkayssy/leave-management-system/internal/shared/apperror"
)

// The API renders bare resources on success and a flat error object on
// failure: {"error": "..."} for auth/role/lookup failures, {"errors":
// {field: message}} for 422 validation failures.

func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func ValidationErrors(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fields})
}

// FromError renders any service error with the shape the contract fixes for
// its kind.
func FromError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Code == apperror.CodeValidation {
		if fields, ok := httpErr.Details.(map[string]string); ok {
			ValidationErrors(c, fields)
			return
		}
	}
	Error(c, httpErr.Status, httpErr.Message)
}
