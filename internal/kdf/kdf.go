// Package kdf derives symmetric keys from passwords using PBKDF2-HMAC-SHA256,
// for deriving a Master Key from a password when the caller has no raw key
// material of their own.
package kdf

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/cloudnexus/cloudvault/config"
	"github.com/cloudnexus/cloudvault/log"
)

// KeyLength is the length, in bytes, of every key this package derives.
const KeyLength = 32

// MinRecommendedIterations is the floor below which DeriveKey logs a
// warning. The core does not refuse to derive a key below this threshold —
// callers may have their own compliance requirements — it only warns.
const MinRecommendedIterations = config.MinPBKDF2Iterations

// DeriveKey derives a KeyLength-byte key from password and salt using
// PBKDF2-HMAC-SHA256 with the given iteration count.
func DeriveKey(password string, salt []byte, iterations uint32) ([]byte, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("password must not be empty")
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("salt must not be empty")
	}
	if iterations == 0 {
		return nil, fmt.Errorf("iterations must be greater than zero")
	}
	if iterations < MinRecommendedIterations {
		log.Level(log.DebugLevel).
			Field("iterations", iterations).
			Field("recommended_minimum", MinRecommendedIterations).
			Message("cloudvault: PBKDF2 iteration count is below the recommended minimum")
	}

	return pbkdf2.Key([]byte(password), salt, int(iterations), KeyLength, sha256.New), nil
}
