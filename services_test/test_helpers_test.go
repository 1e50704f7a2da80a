package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Forest815/web-sec-playground-1-main/internal/config"
	"github.com/Forest815/web-sec-playground-1-main/internal/models"
	"github.com/Forest815/web-sec-playground-1-main/internal/services"
	"github.com/google/uuid"
)

type mockUserRepo struct {
	getByIDFunc               func(id uuid.UUID) (*models.User, error)
	getByEmailFunc            func(email string) (*models.User, error)
	createFunc                func(user *models.User) error
	updateFunc                func(user *models.User) error
	existsByEmailFunc         func(email string) (bool, error)
	registerFailedAttemptFunc func(id uuid.UUID, maxAttempts int, now time.Time) (bool, error)
	clearLockFunc             func(id uuid.UUID, lastLoginAt *time.Time) error
	updatePasswordFunc        func(id uuid.UUID, passwordHash string) error
}

func (m *mockUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	if m.getByIDFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getByIDFunc(id)
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	if m.getByEmailFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getByEmailFunc(email)
}

func (m *mockUserRepo) Create(user *models.User) error {
	if m.createFunc == nil {
		return errors.New("not implemented")
	}
	return m.createFunc(user)
}

func (m *mockUserRepo) Update(user *models.User) error {
	if m.updateFunc == nil {
		return errors.New("not implemented")
	}
	return m.updateFunc(user)
}

func (m *mockUserRepo) ExistsByEmail(email string) (bool, error) {
	if m.existsByEmailFunc == nil {
		return false, errors.New("not implemented")
	}
	return m.existsByEmailFunc(email)
}

func (m *mockUserRepo) RegisterFailedAttempt(id uuid.UUID, maxAttempts int, now time.Time) (bool, error) {
	if m.registerFailedAttemptFunc == nil {
		return false, errors.New("not implemented")
	}
	return m.registerFailedAttemptFunc(id, maxAttempts, now)
}

func (m *mockUserRepo) ClearLock(id uuid.UUID, lastLoginAt *time.Time) error {
	if m.clearLockFunc == nil {
		return errors.New("not implemented")
	}
	return m.clearLockFunc(id, lastLoginAt)
}

func (m *mockUserRepo) UpdatePassword(id uuid.UUID, passwordHash string) error {
	if m.updatePasswordFunc == nil {
		return errors.New("not implemented")
	}
	return m.updatePasswordFunc(id, passwordHash)
}

type mockSessionRepo struct {
	replaceFunc      func(session *models.Session) error
	getByIDFunc      func(id uuid.UUID) (*models.Session, error)
	updateExpiryFunc func(id uuid.UUID, expiresAt time.Time) error
	deleteFunc       func(id uuid.UUID) error
}

func (m *mockSessionRepo) Replace(session *models.Session) error {
	if m.replaceFunc == nil {
		return errors.New("not implemented")
	}
	return m.replaceFunc(session)
}

func (m *mockSessionRepo) GetByID(id uuid.UUID) (*models.Session, error) {
	if m.getByIDFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getByIDFunc(id)
}

func (m *mockSessionRepo) UpdateExpiry(id uuid.UUID, expiresAt time.Time) error {
	if m.updateExpiryFunc == nil {
		return errors.New("not implemented")
	}
	return m.updateExpiryFunc(id, expiresAt)
}

func (m *mockSessionRepo) Delete(id uuid.UUID) error {
	if m.deleteFunc == nil {
		return errors.New("not implemented")
	}
	return m.deleteFunc(id)
}

type mockHistoryRepo struct {
	appendFunc     func(entry *models.LoginHistory) error
	listByUserFunc func(userID uuid.UUID, limit int) ([]models.LoginHistory, error)

	entries []models.LoginHistory
}

func (m *mockHistoryRepo) Append(entry *models.LoginHistory) error {
	if m.appendFunc != nil {
		return m.appendFunc(entry)
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockHistoryRepo) ListByUser(userID uuid.UUID, limit int) ([]models.LoginHistory, error) {
	if m.listByUserFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.listByUserFunc(userID, limit)
}

func newAuthTestConfig() *config.AuthConfig {
	return &config.AuthConfig{
		MaxLoginAttempts:      5,
		LockDurationMinutes:   30,
		SessionDurationHours:  3,
		ThrottleWindowMinutes: 5,
		ThrottleMaxAttempts:   5,
		ThrottleBlockMinutes:  30,
		BcryptCost:            4, // min cost keeps tests fast
		MinPasswordLength:     8,
	}
}

func newTestHasher(t *testing.T) *services.CredentialHasher {
	t.Helper()
	hasher, err := services.NewCredentialHasher(4)
	if err != nil {
		t.Fatalf("failed to create hasher: %v", err)
	}
	return hasher
}

type authFixture struct {
	userRepo    *mockUserRepo
	sessionRepo *mockSessionRepo
	historyRepo *mockHistoryRepo
	throttle    *services.LoginThrottle
	hasher      *services.CredentialHasher
	service     *services.AuthService
}

func newAuthFixture(t *testing.T, userRepo *mockUserRepo) *authFixture {
	t.Helper()

	cfg := newAuthTestConfig()
	sessionRepo := &mockSessionRepo{
		replaceFunc: func(session *models.Session) error { return nil },
		deleteFunc:  func(id uuid.UUID) error { return nil },
	}
	historyRepo := &mockHistoryRepo{}
	throttle := services.NewLoginThrottle(cfg.ThrottleWindow(), cfg.ThrottleMaxAttempts, cfg.ThrottleBlockDuration())
	hasher := newTestHasher(t)
	sessions := services.NewSessionService(sessionRepo, cfg.SessionDuration())

	return &authFixture{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		historyRepo: historyRepo,
		throttle:    throttle,
		hasher:      hasher,
		service:     services.NewAuthService(userRepo, historyRepo, sessions, throttle, hasher, cfg),
	}
}

func mustHash(t *testing.T, hasher *services.CredentialHasher, secret string) string {
	t.Helper()
	digest, err := hasher.Hash(secret)
	if err != nil {
		t.Fatalf("failed to hash %q: %v", secret, err)
	}
	return digest
}
