package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name             string    `gorm:"type:varchar(100);not null" json:"name"`
	PasswordHash     string    `gorm:"type:varchar(255);not null" json:"-"`
	SecretAnswerHash *string   `gorm:"type:varchar(255)" json:"-"`

	// Lockout state. IsLocked implies LockedAt is set; both are cleared together
	// with the attempt counter.
	FailedLoginAttempts int        `gorm:"not null;default:0" json:"-"`
	IsLocked            bool       `gorm:"not null;default:false" json:"-"`
	LockedAt            *time.Time `gorm:"type:timestamptz" json:"-"`

	LastLoginAt *time.Time `gorm:"type:timestamptz" json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
