package leave

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires both the employee-facing leave resource and the
// manager/admin surface. The manager group hard-denies with a 403 when the
// caller lacks the role; the employee listing silently scopes instead.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	managerHandler *ManagerHandler,
	authRequired gin.HandlerFunc,
	requireManager gin.HandlerFunc,
	idempotency gin.HandlerFunc,
) {
	leaves := r.Group("/leaves", authRequired)
	{
		leaves.GET("", handler.List)
		leaves.GET("/dashboard", handler.Dashboard)
		leaves.GET("/:id", handler.Get)
		leaves.POST("", idempotency, handler.Create)
		leaves.PATCH("/:id", handler.Update)
		leaves.DELETE("/:id", handler.Delete)
	}

	manager := r.Group("/manager/leaves", authRequired, requireManager)
	{
		manager.GET("", managerHandler.List)
		manager.GET("/dashboard", managerHandler.Dashboard)
		manager.GET("/:id", managerHandler.Get)
		manager.PATCH("/:id/approve", managerHandler.Approve)
		manager.PATCH("/:id/reject", managerHandler.Reject)
	}
}
