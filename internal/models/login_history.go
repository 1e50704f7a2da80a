package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoginHistory is an append-only audit record of login attempts against a
// known account. Attempts for unknown emails have no account to attach to and
// are not recorded.
type LoginHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	IPAddress string    `gorm:"type:varchar(50);not null" json:"ip_address"`
	UserAgent string    `gorm:"type:text;not null" json:"user_agent"`
	Success   bool      `gorm:"not null" json:"success"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (LoginHistory) TableName() string {
	return "login_history"
}

func (lh *LoginHistory) BeforeCreate(tx *gorm.DB) error {
	if lh.ID == uuid.Nil {
		lh.ID = uuid.New()
	}
	return nil
}
