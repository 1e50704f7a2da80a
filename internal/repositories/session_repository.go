package repositories

import (
	"errors"
	"time"

	"github.com/Forest815/web-sec-playground-1-main/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	// Replace deletes every session owned by session.UserID and inserts the new
	// one in a single transaction, so exactly one live session per user survives
	// even when two logins race.
	Replace(session *models.Session) error
	GetByID(id uuid.UUID) (*models.Session, error)
	UpdateExpiry(id uuid.UUID, expiresAt time.Time) error
	Delete(id uuid.UUID) error
}

type gormSessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: db}
}

func (r *gormSessionRepository) Replace(session *models.Session) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Session{}, "user_id = ?", session.UserID).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
}

func (r *gormSessionRepository) GetByID(id uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *gormSessionRepository) UpdateExpiry(id uuid.UUID, expiresAt time.Time) error {
	return r.db.Model(&models.Session{}).
		Where("id = ?", id).
		Update("expires_at", expiresAt).Error
}

func (r *gormSessionRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Session{}, "id = ?", id).Error
}
