package leave

import "time"

type CreateLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	LeaveType string `json:"leave_type" binding:"required,oneof=annual sick unpaid emergency"`
	Reason    string `json:"reason"`
	// Accepted on the wire but never honored: a caller cannot self-approve
	// at creation, the record always starts pending.
	Status string `json:"status"`
}

// CreateLeaveEnvelope matches the wire shape {"leave": {...}}.
type CreateLeaveEnvelope struct {
	Leave CreateLeaveRequest `json:"leave" binding:"required"`
}

// UpdateLeaveRequest is a partial patch over the owner-mutable fields. Status
// and owner are not reachable through this path.
type UpdateLeaveRequest struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	LeaveType *string `json:"leave_type" binding:"omitempty,oneof=annual sick unpaid emergency"`
	Reason    *string `json:"reason"`
}

type UpdateLeaveEnvelope struct {
	Leave UpdateLeaveRequest `json:"leave" binding:"required"`
}

type DecideLeaveRequest struct {
	ManagerNotes *string `json:"manager_notes"`
}

type LeaveResponse struct {
	ID           uint    `json:"id"`
	UserID       uint    `json:"user_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	LeaveType    string  `json:"leave_type"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ManagerNotes *string `json:"manager_notes,omitempty"`
	Duration     int     `json:"duration"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	User         *Owner  `json:"user,omitempty"`
}

const dateLayout = "2006-01-02"

func mapToResponse(l Leave, includeOwner bool) LeaveResponse {
	resp := LeaveResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		StartDate:    l.StartDate.Format(dateLayout),
		EndDate:      l.EndDate.Format(dateLayout),
		LeaveType:    l.LeaveType,
		Reason:       l.Reason,
		Status:       l.Status,
		ManagerNotes: l.ManagerNotes,
		Duration:     l.Duration(),
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    l.UpdatedAt.Format(time.RFC3339),
	}
	if includeOwner {
		resp.User = l.User
	}
	return resp
}

func mapToListResponse(leaves []Leave, includeOwner bool) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l, includeOwner)
	}
	return resp
}
