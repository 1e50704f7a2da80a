package repositories

import (
	"errors"
	"time"

	"github.com/Forest815/web-sec-playground-1-main/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		// Requires TranslateError on the gorm.Config (set in database.Connect).
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *GormUserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormUserRepository) RegisterFailedAttempt(id uuid.UUID, maxAttempts int, now time.Time) (bool, error) {
	locked := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", id).Error; err != nil {
			return err
		}

		attempts := user.FailedLoginAttempts + 1
		updates := map[string]interface{}{
			"failed_login_attempts": attempts,
		}
		if attempts >= maxAttempts {
			locked = true
			updates["is_locked"] = true
			updates["locked_at"] = now
		}
		return tx.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return false, err
	}
	return locked, nil
}

func (r *GormUserRepository) ClearLock(id uuid.UUID, lastLoginAt *time.Time) error {
	updates := map[string]interface{}{
		"failed_login_attempts": 0,
		"is_locked":             false,
		"locked_at":             nil,
	}
	if lastLoginAt != nil {
		updates["last_login_at"] = *lastLoginAt
	}
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *GormUserRepository) UpdatePassword(id uuid.UUID, passwordHash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}
