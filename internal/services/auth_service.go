package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Forest815/web-sec-playground-1-main/internal/config"
	"github.com/Forest815/web-sec-playground-1-main/internal/models"
	"github.com/Forest815/web-sec-playground-1-main/internal/repositories"
	"github.com/google/uuid"
)

var (
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers unknown email and wrong password alike, so
	// the response never reveals whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked")
	// ErrAccountLockedNow means this very attempt crossed the failure
	// threshold; the user-facing message differs from an already-locked hit.
	ErrAccountLockedNow    = errors.New("account locked after repeated failures")
	ErrIPBlocked           = errors.New("address is temporarily blocked")
	ErrTooManyAttempts     = errors.New("too many login attempts")
	ErrInvalidSecretAnswer = errors.New("secret answer is incorrect")
	ErrUserNotFound        = errors.New("user not found")
	ErrPasswordTooShort    = errors.New("password too short")
)

const tempPasswordLength = 10

// AuthService orchestrates the login gates in order: address throttle,
// account lookup, account lock, credential verification. It owns the
// account-lock state machine (Open → locked after max failures → auto-unlock
// after the lock duration) and records login history for known accounts.
type AuthService struct {
	userRepo    repositories.UserRepository
	historyRepo repositories.LoginHistoryRepository
	sessions    *SessionService
	throttle    *LoginThrottle
	hasher      *CredentialHasher
	cfg         *config.AuthConfig

	now func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	historyRepo repositories.LoginHistoryRepository,
	sessions *SessionService,
	throttle *LoginThrottle,
	hasher *CredentialHasher,
	cfg *config.AuthConfig,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		historyRepo: historyRepo,
		sessions:    sessions,
		throttle:    throttle,
		hasher:      hasher,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Login decides whether (ipAddress, email, password) may establish a session
// and mints one when it may. The returned session ID is the cookie value; the
// caller owns transport.
//
// Unknown emails leave no history entry (there is no account to attach it
// to); every other failure against a known account is recorded.
func (s *AuthService) Login(ipAddress, userAgent, email, password string) (*models.User, uuid.UUID, error) {
	if s.throttle.IsBlocked(ipAddress) {
		return nil, uuid.Nil, ErrIPBlocked
	}
	if !s.throttle.RegisterAttempt(ipAddress) {
		return nil, uuid.Nil, ErrTooManyAttempts
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if user == nil {
		return nil, uuid.Nil, ErrInvalidCredentials
	}

	locked, err := s.checkLock(user)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if locked {
		if err := s.recordHistory(user.ID, ipAddress, userAgent, false); err != nil {
			return nil, uuid.Nil, err
		}
		return nil, uuid.Nil, ErrAccountLocked
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		lockedNow, err := s.userRepo.RegisterFailedAttempt(user.ID, s.cfg.MaxLoginAttempts, s.now().UTC())
		if err != nil {
			return nil, uuid.Nil, err
		}
		if err := s.recordHistory(user.ID, ipAddress, userAgent, false); err != nil {
			return nil, uuid.Nil, err
		}
		if lockedNow {
			return nil, uuid.Nil, ErrAccountLockedNow
		}
		return nil, uuid.Nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.userRepo.ClearLock(user.ID, &now); err != nil {
		return nil, uuid.Nil, err
	}
	if err := s.recordHistory(user.ID, ipAddress, userAgent, true); err != nil {
		return nil, uuid.Nil, err
	}
	s.throttle.Reset(ipAddress)

	sessionID, err := s.sessions.Create(user.ID, ipAddress, userAgent)
	if err != nil {
		return nil, uuid.Nil, err
	}

	user.FailedLoginAttempts = 0
	user.IsLocked = false
	user.LockedAt = nil
	user.LastLoginAt = &now
	return user, sessionID, nil
}

// checkLock reports whether the account is currently locked. A lock whose
// duration has elapsed is cleared here (auto-unlock) and the attempt counter
// starts over.
func (s *AuthService) checkLock(user *models.User) (bool, error) {
	if !user.IsLocked {
		return false, nil
	}

	now := s.now().UTC()
	if user.LockedAt != nil && now.Before(user.LockedAt.Add(s.cfg.LockDuration())) {
		return true, nil
	}

	if err := s.userRepo.ClearLock(user.ID, nil); err != nil {
		return false, err
	}
	user.FailedLoginAttempts = 0
	user.IsLocked = false
	user.LockedAt = nil
	return false, nil
}

// Register creates an account, hashing the password and the secret-question
// answer with the same primitive. A duplicate email surfaces as ErrUserExists.
func (s *AuthService) Register(name, email, password, secretAnswer string) (*models.User, error) {
	if len(password) < s.cfg.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	answerHash, err := s.hasher.Hash(secretAnswer)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:            email,
		Name:             name,
		PasswordHash:     passwordHash,
		SecretAnswerHash: &answerHash,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// ResetPassword verifies the secret-question answer and replaces the password
// with a freshly generated temporary one. The plaintext temporary password is
// returned to the caller exactly once and never stored or logged.
//
// A missing account and a missing or wrong secret answer all produce
// ErrInvalidSecretAnswer, so the endpoint cannot be used to probe for
// registered emails.
func (s *AuthService) ResetPassword(email, secretAnswer string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil || user.SecretAnswerHash == nil {
		// Still burn a hash comparison to keep timing comparable.
		s.hasher.Verify(secretAnswer, "")
		return "", ErrInvalidSecretAnswer
	}

	if !s.hasher.Verify(secretAnswer, *user.SecretAnswerHash) {
		return "", ErrInvalidSecretAnswer
	}

	tempPassword, err := models.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return "", fmt.Errorf("generate temp password: %w", err)
	}
	tempHash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdatePassword(user.ID, tempHash); err != nil {
		return "", err
	}
	// Resetting the password also lifts any lockout.
	if err := s.userRepo.ClearLock(user.ID, nil); err != nil {
		return "", err
	}
	return tempPassword, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *AuthService) ChangePassword(userID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < s.cfg.MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(userID, newHash)
}

// Logout invalidates the session. Always succeeds from the user's point of
// view; an already-absent session is not an error.
func (s *AuthService) Logout(sessionID uuid.UUID) error {
	return s.sessions.Invalidate(sessionID)
}

// CheckEmail reports whether an account with the email exists. Exposed on a
// dedicated endpoint for the signup form.
func (s *AuthService) CheckEmail(email string) (bool, error) {
	return s.userRepo.ExistsByEmail(email)
}

// LoginHistory returns the account's most recent login attempts, newest
// first.
func (s *AuthService) LoginHistory(userID uuid.UUID, limit int) ([]models.LoginHistory, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.historyRepo.ListByUser(userID, limit)
}

func (s *AuthService) recordHistory(userID uuid.UUID, ipAddress, userAgent string, success bool) error {
	return s.historyRepo.Append(&models.LoginHistory{
		UserID:    userID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Success:   success,
	})
}
