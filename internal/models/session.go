package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one authenticated browser context. The ID doubles as the opaque
// bearer token carried in the session cookie, so it must come from uuid.New
// (crypto/rand backed) and never from anything guessable.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"type:timestamptz;not null;index"`
	IPAddress *string   `gorm:"type:varchar(50)"`
	UserAgent *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (Session) TableName() string {
	return "sessions"
}
