package leave

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

type DashboardStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type DashboardResponse struct {
	Stats         DashboardStats   `json:"stats"`
	RecentLeaves  map[string]int64 `json:"recent_leaves"`
	LeaveTypes    map[string]int64 `json:"leave_types"`
	RecentPending []LeaveResponse  `json:"recent_pending"`
}

const (
	dashboardCacheKey   = "leaves:dashboard:all"
	dashboardCacheTTL   = 30 * time.Second
	dashboardRecentDays = 7
	dashboardRecentN    = 5
)

// Dashboard is a read-only projection over the store: counts by status and
// type, a trailing per-day creation histogram, and the most recent pending
// requests. The store-wide (manager) variant is served from a short redis
// cache behind singleflight so bursts of dashboard loads hit the database
// once; the owner-scoped variant is computed directly.
func (s *service) Dashboard(ctx context.Context, ownerID *uint) (DashboardResponse, error) {
	if ownerID != nil {
		return s.buildDashboard(ctx, ownerID)
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var resp DashboardResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(dashboardCacheKey, func() (interface{}, error) {
		resp, err := s.buildDashboard(ctx, nil)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				if setErr := s.rdb.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL).Err(); setErr != nil {
					s.logger.Warn("dashboard cache write failed", zap.Error(setErr))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return DashboardResponse{}, err
	}

	return v.(DashboardResponse), nil
}

func (s *service) buildDashboard(ctx context.Context, ownerID *uint) (DashboardResponse, error) {
	byStatus, err := s.repo.CountByStatus(ctx, ownerID)
	if err != nil {
		return DashboardResponse{}, err
	}

	stats := DashboardStats{
		Pending:  byStatus[StatusPending],
		Approved: byStatus[StatusApproved],
		Rejected: byStatus[StatusRejected],
	}
	for _, n := range byStatus {
		stats.Total += n
	}

	byType, err := s.repo.CountByType(ctx, ownerID)
	if err != nil {
		return DashboardResponse{}, err
	}

	// Bucket by calendar day in the server's local time, oldest day first.
	recent := make(map[string]int64, dashboardRecentDays)
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for i := dashboardRecentDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		count, err := s.repo.CountCreatedBetween(ctx, ownerID, day, day.AddDate(0, 0, 1))
		if err != nil {
			return DashboardResponse{}, err
		}
		recent[day.Format(dateLayout)] = count
	}

	pending, err := s.repo.FindRecentByStatus(ctx, ownerID, StatusPending, dashboardRecentN)
	if err != nil {
		return DashboardResponse{}, err
	}

	return DashboardResponse{
		Stats:         stats,
		RecentLeaves:  recent,
		LeaveTypes:    byType,
		RecentPending: mapToListResponse(pending, ownerID == nil),
	}, nil
}
