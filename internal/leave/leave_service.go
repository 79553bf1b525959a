package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	leaveerrors "github.com/Berkayssy/leave-management-system/internal/leave/errors"
	"github.com/Berkayssy/leave-management-system/internal/policy"
	"github.com/Berkayssy/leave-management-system/internal/shared/apperror"
)

type Service interface {
	Create(ctx context.Context, callerID uint, req CreateLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, callerID uint, role, statusFilter string) ([]LeaveResponse, error)
	Get(ctx context.Context, callerID uint, role string, id uint) (LeaveResponse, error)
	Update(ctx context.Context, callerID uint, id uint, req UpdateLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, callerID uint, id uint) error
	Decide(ctx context.Context, callerID uint, role string, id uint, decision string, notes *string) (LeaveResponse, error)
	Dashboard(ctx context.Context, ownerID *uint) (DashboardResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	pol    *policy.Policy
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, pol *policy.Policy, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, pol: pol, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// Create persists a new leave record owned by the caller. Status is forced
// to pending as an explicit step, whatever the payload supplied.
func (s *service) Create(ctx context.Context, callerID uint, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.Uint("caller_id", callerID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.String("leave_type", req.LeaveType),
	)

	startDate, endDate, err := validateCreateRequest(req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &Leave{
		UserID:    callerID,
		StartDate: startDate,
		EndDate:   endDate,
		LeaveType: req.LeaveType,
		Reason:    req.Reason,
		Status:    StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("create leave success",
		zap.Uint("leave_id", l.ID),
		zap.Uint("caller_id", callerID),
	)
	return mapToResponse(*l, false), nil
}

// List returns leave records newest first. Managers and admins see the full
// store with an optional status filter; everyone else is silently scoped to
// their own records, whatever filter parameters they supplied.
func (s *service) List(ctx context.Context, callerID uint, role, statusFilter string) ([]LeaveResponse, error) {
	if s.pol.CanViewAll(role) {
		leaves, err := s.repo.FindAll(ctx, statusFilter)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(leaves, true), nil
	}

	leaves, err := s.repo.FindAllByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves, false), nil
}

// Get distinguishes absence from denial: a missing id is a 404, an existing
// record the caller may not read is a 403.
func (s *service) Get(ctx context.Context, callerID uint, role string, id uint) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	canViewAll := s.pol.CanViewAll(role)
	if !s.pol.CanManageOwnRecord(callerID, l.UserID) && !canViewAll {
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}

	return mapToResponse(*l, canViewAll), nil
}

// Update applies an owner-only partial patch over the mutable fields. Role
// grants no bypass here: an admin patching another user's record is denied.
// Decided records are immutable to the owner.
func (s *service) Update(ctx context.Context, callerID uint, id uint, req UpdateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("update leave requested",
		zap.Uint("leave_id", id),
		zap.Uint("caller_id", callerID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if !s.pol.CanManageOwnRecord(callerID, l.UserID) {
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}
	if !l.IsPending() {
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate, "start_date")
		if err != nil {
			return LeaveResponse{}, err
		}
		l.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate, "end_date")
		if err != nil {
			return LeaveResponse{}, err
		}
		l.EndDate = endDate
	}
	if req.LeaveType != nil {
		if !validLeaveType(*req.LeaveType) {
			return LeaveResponse{}, apperror.NewValidation("leave_type", "is not included in the list")
		}
		l.LeaveType = *req.LeaveType
	}
	if req.Reason != nil {
		l.Reason = *req.Reason
	}

	// Re-validate the range after the patch; a patch may not leave the
	// record with end before start.
	if l.EndDate.Before(l.StartDate) {
		return LeaveResponse{}, leaveerrors.EndBeforeStart()
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("update leave success", zap.Uint("leave_id", id))
	return mapToResponse(*l, false), nil
}

// Delete is owner-only and not idempotent: a second call finds nothing and
// reports a 404.
func (s *service) Delete(ctx context.Context, callerID uint, id uint) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}

	if !s.pol.CanManageOwnRecord(callerID, l.UserID) {
		return leaveerrors.ErrNotOwner
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete leave persist failed", zap.Uint("leave_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete leave success", zap.Uint("leave_id", id))
	return nil
}

// Decide moves a record to approved or rejected. Only manager/admin roles
// may decide, never the owner as such. Re-deciding an already-decided record
// overwrites it: decide is an idempotent overwrite, not a guarded
// transition.
func (s *service) Decide(ctx context.Context, callerID uint, role string, id uint, decision string, notes *string) (LeaveResponse, error) {
	s.logger.Debug("decide leave requested",
		zap.Uint("leave_id", id),
		zap.Uint("caller_id", callerID),
		zap.String("decision", decision),
	)

	if !s.pol.CanDecide(role) {
		s.logger.Warn("decide leave forbidden",
			zap.Uint("caller_id", callerID),
			zap.String("role", role),
		)
		return LeaveResponse{}, leaveerrors.ErrDecisionForbidden
	}
	if decision != StatusApproved && decision != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	l.Status = decision
	if notes != nil {
		l.ManagerNotes = notes
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed",
			zap.Uint("leave_id", id),
			zap.String("decision", decision),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.Uint("leave_id", id),
		zap.String("status", decision),
	)
	return mapToResponse(*l, true), nil
}

func validLeaveType(t string) bool {
	switch t {
	case TypeAnnual, TypeSick, TypeUnpaid, TypeEmergency:
		return true
	}
	return false
}

func validateCreateRequest(req CreateLeaveRequest) (time.Time, time.Time, error) {
	v := &apperror.ValidationError{Fields: map[string]string{}}
	if req.StartDate == "" {
		v.Add("start_date", "can't be blank")
	}
	if req.EndDate == "" {
		v.Add("end_date", "can't be blank")
	}
	if req.LeaveType == "" {
		v.Add("leave_type", "can't be blank")
	}
	if len(v.Fields) > 0 {
		return time.Time{}, time.Time{}, v
	}

	if !validLeaveType(req.LeaveType) {
		return time.Time{}, time.Time{}, apperror.NewValidation("leave_type", "is not included in the list")
	}

	startDate, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, leaveerrors.EndBeforeStart()
	}

	return startDate, endDate, nil
}

func parseDate(v, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.InvalidDate(field)
	}
	return t, nil
}
