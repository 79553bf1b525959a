package user

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the users resource. POST /users is the tokenless
// signup alias, handled by the auth module; admin-only routes sit behind
// the role gate.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	signup gin.HandlerFunc,
	authRequired gin.HandlerFunc,
	requireAdmin gin.HandlerFunc,
) {
	users := r.Group("/users")
	{
		users.POST("", signup)
		users.GET("", authRequired, requireAdmin, handler.Index)
		users.DELETE("/:id", authRequired, requireAdmin, handler.Destroy)
	}
}
