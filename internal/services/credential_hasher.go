package services

import (
	"golang.org/x/crypto/bcrypt"
)

// CredentialHasher hashes and verifies secrets (passwords and secret-question
// answers) with bcrypt. Both kinds of secret use the same cost; the cost is
// tunable without changing the digest format because bcrypt embeds it.
type CredentialHasher struct {
	cost  int
	dummy []byte
}

func NewCredentialHasher(cost int) (*CredentialHasher, error) {
	if cost == 0 {
		cost = 12
	}
	// Precomputed digest used when the caller has no stored hash, so the
	// "absent hash" and "wrong secret" paths consume comparable time.
	dummy, err := bcrypt.GenerateFromPassword([]byte("web-sec-playground-dummy"), cost)
	if err != nil {
		return nil, err
	}
	return &CredentialHasher{cost: cost, dummy: dummy}, nil
}

func (h *CredentialHasher) Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *CredentialHasher) Verify(secret, digest string) bool {
	if digest == "" {
		// Burn a comparison anyway so this path is not observably faster.
		_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(secret))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
