package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	autherrors "github.com/Berkayssy/leave-management-system/internal/auth/errors"
	"github.com/Berkayssy/leave-management-system/internal/shared/apperror"
	"github.com/Berkayssy/leave-management-system/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Malformed login input is still an auth failure on the wire; do not
		// reveal which field was wrong.
		response.FromError(c, autherrors.ErrInvalidCredentials)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) Signup(c *gin.Context) {
	var env SignupEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		h.logger.Debug("signup validation failed", zap.Error(err))
		response.FromError(c, apperror.MapBindingError(err))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), env.User)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetUint("user_id")

	resp, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"user": resp})
}

// Logout is stateless: the token simply expires client-side. The endpoint
// exists so clients have a uniform call to clear their session against.
func (h *Handler) Logout(c *gin.Context) {
	response.Message(c, http.StatusOK, "Logged out successfully")
}
