package models

// This file provides a central import point for all models
// and helper functions for database operations

import (
	"crypto/rand"
	"math/big"
)

// AllModels returns all model types for GORM operations
// Note: Migrations are handled by golang-migrate, not GORM AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Session{},
		&LoginHistory{},
	}
}

const tempPasswordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateTempPassword generates a random lowercase-alphanumeric password for
// the reset-password flow. The plaintext is handed to the caller exactly once
// and only the hash is ever stored.
func GenerateTempPassword(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
