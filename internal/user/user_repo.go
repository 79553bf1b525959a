package user

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	LeaveCounts(ctx context.Context, userID uint) (total int64, pending int64, err error)
	Delete(ctx context.Context, id uint) error
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

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) FindAll(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *repository) LeaveCounts(ctx context.Context, userID uint) (int64, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("leaves").
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}

	var pending int64
	err = r.db.WithContext(ctx).
		Table("leaves").
		Where("user_id = ?", userID).
		Where("status = ?", "pending").
		Count(&pending).Error
	if err != nil {
		return 0, 0, err
	}

	return total, pending, nil
}

// Delete removes the user and every leave record it owns. Ownership is
// exclusive, so the records go with the owner.
func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM leaves WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&User{}, "id = ?", id).Error
	})
}
