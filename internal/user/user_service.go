package user

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]UserWithCounts, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// List returns every user with their leave totals. Reachable only through
// the admin-gated route.
func (s *service) List(ctx context.Context) ([]UserWithCounts, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, err
	}

	resp := make([]UserWithCounts, 0, len(users))
	for _, u := range users {
		total, pending, err := s.repo.LeaveCounts(ctx, u.ID)
		if err != nil {
			s.logger.Error("list users leave counts failed",
				zap.Uint("user_id", u.ID),
				zap.Error(err),
			)
			return nil, err
		}
		resp = append(resp, UserWithCounts{
			ID:            u.ID,
			Name:          u.Name,
			Email:         u.Email,
			Role:          u.Role,
			CreatedAt:     u.CreatedAt,
			LeavesCount:   total,
			PendingLeaves: pending,
		})
	}

	return resp, nil
}

// Delete removes a user together with every leave record it owns.
func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return MapRepositoryError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete user failed", zap.Uint("user_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("delete user success", zap.Uint("user_id", id))
	return nil
}
