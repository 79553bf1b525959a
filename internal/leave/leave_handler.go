package leave

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	leaveerrors "github.com/Berkayssy/leave-management-system/internal/leave/errors"
	"github.com/Berkayssy/leave-management-system/internal/middleware"
	"github.com/Berkayssy/leave-management-system/internal/shared/apperror"
	"github.com/Berkayssy/leave-management-system/internal/shared/response"
)

// Handler serves the employee-facing leave routes. Every route runs behind
// AuthRequired, so user_id and role are always on the context.
type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func leaveID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, leaveerrors.ErrLeaveNotFound
	}
	return uint(id), nil
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.FromError(c, err)
}

func (h *Handler) Create(c *gin.Context) {
	callerID := c.GetUint("user_id")

	lockKey := c.GetString("idempotency_lock_key")
	cacheKey := c.GetString("idempotency_cache_key")
	if h.rdb != nil && lockKey != "" {
		defer h.rdb.Del(c.Request.Context(), lockKey)
	}

	var env CreateLeaveEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		h.logger.Debug("create leave binding failed", zap.Error(err))
		response.FromError(c, apperror.MapBindingError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), callerID, env.Leave)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil && cacheKey != "" {
		if body, marshalErr := json.Marshal(resp); marshalErr == nil {
			payload, marshalErr := json.Marshal(middleware.CachedResponse{
				Status: http.StatusCreated,
				Body:   body,
			})
			if marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), cacheKey, payload, 24*time.Hour).Err()
			}
		}
	}

	response.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) List(c *gin.Context) {
	callerID := c.GetUint("user_id")
	role := c.GetString("role")

	resp, err := h.service.List(c.Request.Context(), callerID, role, "")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := leaveID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp, err := h.service.Get(c.Request.Context(), c.GetUint("user_id"), c.GetString("role"), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := leaveID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var env UpdateLeaveEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		h.logger.Debug("update leave binding failed", zap.Error(err))
		response.FromError(c, apperror.MapBindingError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.GetUint("user_id"), id, env.Leave)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := leaveID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetUint("user_id"), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}

// Dashboard returns the caller's own aggregates, whatever their role.
func (h *Handler) Dashboard(c *gin.Context) {
	callerID := c.GetUint("user_id")

	resp, err := h.service.Dashboard(c.Request.Context(), &callerID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}
