package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	autherrors "github.com/Berkayssy/leave-management-system/internal/auth/errors"
	"github.com/Berkayssy/leave-management-system/internal/shared/contextutil"
	"github.com/Berkayssy/leave-management-system/internal/shared/response"
)

// TokenAuthenticator is the slice of the auth service this middleware needs:
// token to live identity, or an auth error.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (id uint, role string, err error)
}

// AuthRequired gates every protected endpoint. Absence of a bearer token,
// a bad or expired token, and a token bound to a deleted user all abort the
// request with a 401.
func AuthRequired(authenticator TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			response.FromError(c, autherrors.ErrMissingToken)
			c.Abort()
			return
		}

		userID, role, err := authenticator.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)

		ctx := contextutil.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole gates a route group on a policy predicate. Denial is a hard
// 403 with the group's contract message, never an empty result.
func RequireRole(check func(role string) bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if !check(role) {
			response.Error(c, http.StatusForbidden, message)
			c.Abort()
			return
		}
		c.Next()
	}
}
