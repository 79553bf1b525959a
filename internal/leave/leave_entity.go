package leave

import (
	"time"
)

// Leave lifecycle: created pending, decided exactly into approved or
// rejected. Both decided states are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeAnnual    = "annual"
	TypeSick      = "sick"
	TypeUnpaid    = "unpaid"
	TypeEmergency = "emergency"
)

type Leave struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_leaves_user"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	LeaveType string    `gorm:"type:varchar(30);not null"`
	Reason    string    `gorm:"type:text"`

	Status       string  `gorm:"type:varchar(20);not null;default:'pending';index:idx_leaves_status"`
	ManagerNotes *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	User *Owner `gorm:"foreignKey:UserID"`
}

func (Leave) TableName() string {
	return "leaves"
}

// Owner is the minimal slice of the users table a leave record embeds when
// manager views need the requester's details.
type Owner struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (Owner) TableName() string {
	return "users"
}

// Duration is the inclusive day count of the leave period. A single-day
// leave (end == start) has duration 1.
func (l Leave) Duration() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

func (l Leave) IsPending() bool {
	return l.Status == StatusPending
}
