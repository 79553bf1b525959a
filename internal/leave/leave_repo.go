package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// ownerScope narrows a query to one owner's records. A nil owner means the
// full store (manager/admin scope).
func ownerScope(ownerID *uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if ownerID == nil {
			return db
		}
		return db.Where("user_id = ?", *ownerID)
	}
}

// recency is the listing contract: most recently created first. The id
// tiebreak keeps ordering deterministic for records created in the same
// instant.
func recency(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context, statusFilter string) ([]Leave, error)
	FindAllByOwner(ctx context.Context, ownerID uint) ([]Leave, error)
	FindByID(ctx context.Context, id uint) (*Leave, error)
	Update(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, id uint) error

	CountByStatus(ctx context.Context, ownerID *uint) (map[string]int64, error)
	CountByType(ctx context.Context, ownerID *uint) (map[string]int64, error)
	CountCreatedBetween(ctx context.Context, ownerID *uint, from, to time.Time) (int64, error)
	FindRecentByStatus(ctx context.Context, ownerID *uint, status string, limit int) ([]Leave, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, statusFilter string) ([]Leave, error) {
	var leaves []Leave
	q := r.db.WithContext(ctx).Preload("User").Scopes(recency)
	if statusFilter != "" {
		q = q.Where("status = ?", statusFilter)
	}
	err := q.Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByOwner(ctx context.Context, ownerID uint) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Scopes(ownerScope(&ownerID), recency).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).Preload("User").First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Leave{}, "id = ?", id).Error
}

func (r *repository) CountByStatus(ctx context.Context, ownerID *uint) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(ownerScope(ownerID)).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *repository) CountByType(ctx context.Context, ownerID *uint) (map[string]int64, error) {
	var rows []struct {
		LeaveType string
		Count     int64
	}
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(ownerScope(ownerID)).
		Select("leave_type, count(*) as count").
		Group("leave_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.LeaveType] = row.Count
	}
	return counts, nil
}

func (r *repository) CountCreatedBetween(ctx context.Context, ownerID *uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(ownerScope(ownerID)).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *repository) FindRecentByStatus(ctx context.Context, ownerID *uint, status string, limit int) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Preload("User").
		Scopes(ownerScope(ownerID), recency).
		Where("status = ?", status).
		Limit(limit).
		Find(&leaves).Error
	return leaves, err
}
