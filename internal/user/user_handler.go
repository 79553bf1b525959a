package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Berkayssy/leave-management-system/internal/shared/apperror"
	"github.com/Berkayssy/leave-management-system/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Index(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

func (h *Handler) Destroy(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.FromError(c, apperror.ErrNotFound)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id)); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
