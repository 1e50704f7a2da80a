package repositories

import (
	"github.com/Forest815/web-sec-playground-1-main/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoginHistoryRepository interface {
	Append(entry *models.LoginHistory) error
	ListByUser(userID uuid.UUID, limit int) ([]models.LoginHistory, error)
}

type gormLoginHistoryRepository struct {
	db *gorm.DB
}

func NewLoginHistoryRepository(db *gorm.DB) LoginHistoryRepository {
	return &gormLoginHistoryRepository{db: db}
}

func (r *gormLoginHistoryRepository) Append(entry *models.LoginHistory) error {
	return r.db.Create(entry).Error
}

func (r *gormLoginHistoryRepository) ListByUser(userID uuid.UUID, limit int) ([]models.LoginHistory, error) {
	var entries []models.LoginHistory
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
