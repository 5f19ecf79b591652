package streamcrypt

import (
	"fmt"

	"github.com/cloudnexus/cloudvault/cvcodes"
	"github.com/cloudnexus/cloudvault/generator/randomness"
	"github.com/cloudnexus/cloudvault/internal/aead"
)

// EncryptLegacy seals plaintext as a single AEAD blob: nonce(12) ||
// ciphertext || tag(16). Intended for small payloads such as wrapping a
// key, not for general file content — grounded on the teacher's
// valueAEAD.Seal one-shot shape, which this format must remain
// byte-compatible with.
func EncryptLegacy(key, plaintext []byte) ([]byte, error) {
	nonce, err := randomness.Bytes(aead.NonceSize)
	if err != nil {
		return nil, fmt.Errorf("unable to generate nonce: %w", err)
	}

	ciphertext, err := aead.Seal(key, nonce, plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: legacy seal", cvcodes.ErrEncryptionFailed)
	}

	blob := make([]byte, 0, len(nonce)+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

// DecryptLegacy reverses EncryptLegacy.
func DecryptLegacy(key, blob []byte) ([]byte, error) {
	if len(blob) < aead.NonceSize+aead.Overhead {
		return nil, fmt.Errorf("%w: legacy blob needs at least %d bytes, got %d", cvcodes.ErrInvalidFormat, aead.NonceSize+aead.Overhead, len(blob))
	}

	nonce := blob[:aead.NonceSize]
	ciphertext := blob[aead.NonceSize:]

	return aead.Open(key, nonce, ciphertext, nil)
}
