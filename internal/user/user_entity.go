package user

import (
	"time"
)

// User is the identity store record. The password credential is only ever
// persisted as a bcrypt digest; responses go through UserResponse, which has
// no credential field.
type User struct {
	ID             uint      `gorm:"primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	PasswordDigest string    `gorm:"type:varchar(255);not null"`
	Role           string    `gorm:"type:varchar(50);not null;default:'employee'"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
