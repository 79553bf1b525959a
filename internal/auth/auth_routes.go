package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the auth endpoints. Login and signup are the only
// tokenless routes in the API and sit behind a per-IP rate limit.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authRequired gin.HandlerFunc,
	rateLimit gin.HandlerFunc,
) {
	a := r.Group("/auth")
	{
		a.POST("/login", rateLimit, handler.Login)
		a.POST("/signup", rateLimit, handler.Signup)
		a.GET("/me", authRequired, handler.Me)
		a.POST("/logout", authRequired, handler.Logout)
	}
}
