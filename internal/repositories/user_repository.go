package repositories

import (
	"errors"
	"time"

	"github.com/Forest815/web-sec-playground-1-main/internal/models"
	"github.com/google/uuid"
)

// ErrDuplicateEmail is returned by Create when the email unique constraint is
// violated, so callers can tell "already registered" apart from other
// persistence failures.
var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository interface {
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	ExistsByEmail(email string) (bool, error)

	// RegisterFailedAttempt increments the failure counter inside a row-locked
	// transaction and flips the account to locked when the counter reaches
	// maxAttempts. It reports whether this call locked the account. Two
	// concurrent failures must never lose an increment.
	RegisterFailedAttempt(id uuid.UUID, maxAttempts int, now time.Time) (locked bool, err error)

	// ClearLock resets the failure counter and lock fields. A non-nil
	// lastLoginAt also stamps the successful login time.
	ClearLock(id uuid.UUID, lastLoginAt *time.Time) error

	UpdatePassword(id uuid.UUID, passwordHash string) error
}
