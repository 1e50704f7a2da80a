package services

import (
	"sync"
	"time"
)

type loginAttempt struct {
	count       int
	lastAttempt time.Time
}

// LoginThrottle is the per-address brute-force gate for the login path. State
// is process-local and intentionally not durable; a restart forgets all
// throttling history and the durable account lock remains the backstop.
//
// It is constructed once per process and injected, so tests get isolated
// instances. Expired blocks are evicted lazily on check; there is no
// background sweep.
type LoginThrottle struct {
	mu       sync.Mutex
	attempts map[string]*loginAttempt
	blocks   map[string]time.Time

	window        time.Duration
	maxAttempts   int
	blockDuration time.Duration

	// now is swappable for tests.
	now func() time.Time
}

func NewLoginThrottle(window time.Duration, maxAttempts int, blockDuration time.Duration) *LoginThrottle {
	return &LoginThrottle{
		attempts:      make(map[string]*loginAttempt),
		blocks:        make(map[string]time.Time),
		window:        window,
		maxAttempts:   maxAttempts,
		blockDuration: blockDuration,
		now:           time.Now,
	}
}

// IsBlocked reports whether the address is currently blocked. An expired
// block entry is evicted as a side effect.
func (t *LoginThrottle) IsBlocked(address string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	expiry, ok := t.blocks[address]
	if !ok {
		return false
	}
	if t.now().After(expiry) {
		delete(t.blocks, address)
		return false
	}
	return true
}

// RegisterAttempt counts a login attempt from the address and reports whether
// it is allowed. Reaching the threshold inside the window installs a block;
// an attempt after the window elapsed restarts the count at 1. An attacker
// spacing attempts wider than the window is deliberately not blocked here —
// the account-level lock is the second line of defense.
func (t *LoginThrottle) RegisterAttempt(address string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	attempt, ok := t.attempts[address]
	if !ok {
		t.attempts[address] = &loginAttempt{count: 1, lastAttempt: now}
		return true
	}

	if now.Sub(attempt.lastAttempt) < t.window {
		if attempt.count >= t.maxAttempts {
			t.blocks[address] = now.Add(t.blockDuration)
			return false
		}
		attempt.count++
	} else {
		attempt.count = 1
	}

	attempt.lastAttempt = now
	return true
}

// Reset drops the attempt record and any block for the address. Called after
// a successful login from that address.
func (t *LoginThrottle) Reset(address string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.attempts, address)
	delete(t.blocks, address)
}
