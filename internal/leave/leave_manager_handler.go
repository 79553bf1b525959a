package leave

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Berkayssy/leave-management-system/internal/shared/response"
)

// ManagerHandler serves the /manager/leaves routes. The role gate runs in
// middleware; the service re-checks the decision policy on mutation.
type ManagerHandler struct {
	service Service
	logger  *zap.Logger
}

func NewManagerHandler(service Service, logger ...*zap.Logger) *ManagerHandler {
	l := zap.L().Named("leave.manager_handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.manager_handler")
	}
	return &ManagerHandler{service: service, logger: l}
}

func (h *ManagerHandler) List(c *gin.Context) {
	resp, err := h.service.List(
		c.Request.Context(),
		c.GetUint("user_id"),
		c.GetString("role"),
		c.Query("status"),
	)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

func (h *ManagerHandler) Dashboard(c *gin.Context) {
	resp, err := h.service.Dashboard(c.Request.Context(), nil)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

func (h *ManagerHandler) Get(c *gin.Context) {
	id, err := leaveID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp, err := h.service.Get(c.Request.Context(), c.GetUint("user_id"), c.GetString("role"), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

func (h *ManagerHandler) Approve(c *gin.Context) {
	h.decide(c, StatusApproved)
}

func (h *ManagerHandler) Reject(c *gin.Context) {
	h.decide(c, StatusRejected)
}

func (h *ManagerHandler) decide(c *gin.Context, decision string) {
	id, err := leaveID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// The body is optional on both decisions; manager_notes is the only
	// field it may carry.
	var req DecideLeaveRequest
	_ = c.ShouldBindJSON(&req)

	resp, err := h.service.Decide(
		c.Request.Context(),
		c.GetUint("user_id"),
		c.GetString("role"),
		id,
		decision,
		req.ManagerNotes,
	)
	if err != nil {
		h.logger.Warn("decide leave failed",
			zap.Uint("leave_id", id),
			zap.String("decision", decision),
			zap.Error(err),
		)
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}
