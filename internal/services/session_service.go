package services

import (
	"fmt"
	"time"

	"github.com/Forest815/web-sec-playground-1-main/internal/models"
	"github.com/Forest815/web-sec-playground-1-main/internal/repositories"
	"github.com/google/uuid"
)

// SessionService owns the session lifecycle: creation with single-active-
// session enforcement, sliding-window renewal, and invalidation. Session IDs
// are random v4 UUIDs, unguessable and opaque to the client.
type SessionService struct {
	repo repositories.SessionRepository
	ttl  time.Duration

	now func() time.Time
}

func NewSessionService(repo repositories.SessionRepository, ttl time.Duration) *SessionService {
	return &SessionService{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Create mints a new session for the user, superseding every existing one.
// The delete-then-insert happens in one repository transaction, so two racing
// logins still leave exactly one live session.
func (s *SessionService) Create(userID uuid.UUID, ipAddress, userAgent string) (uuid.UUID, error) {
	session := &models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: s.now().UTC().Add(s.ttl),
		CreatedAt: s.now().UTC(),
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}

	if err := s.repo.Replace(session); err != nil {
		return uuid.Nil, fmt.Errorf("create session: %w", err)
	}
	return session.ID, nil
}

// ValidateAndRenew resolves a presented session ID to its owning user. A
// missing or expired session is cleaned up and reported as not valid. A valid
// session has its expiry pushed out to now+TTL regardless of how much time
// remained, so an idle session below the TTL never expires.
//
// Repository errors are returned as errors, never as "not valid": persistence
// trouble must surface as an internal failure, not log users out.
func (s *SessionService) ValidateAndRenew(sessionID uuid.UUID) (uuid.UUID, bool, error) {
	session, err := s.repo.GetByID(sessionID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("load session: %w", err)
	}

	now := s.now().UTC()
	if session == nil || !session.ExpiresAt.After(now) {
		if err := s.repo.Delete(sessionID); err != nil {
			return uuid.Nil, false, fmt.Errorf("delete stale session: %w", err)
		}
		return uuid.Nil, false, nil
	}

	if err := s.repo.UpdateExpiry(sessionID, now.Add(s.ttl)); err != nil {
		return uuid.Nil, false, fmt.Errorf("renew session: %w", err)
	}
	return session.UserID, true, nil
}

// Invalidate deletes the session. Idempotent; deleting an absent session is
// not an error.
func (s *SessionService) Invalidate(sessionID uuid.UUID) error {
	return s.repo.Delete(sessionID)
}
