// Package wrap seals a File Encryption Key under a Master Key, producing the
// "Wrapped FEK" envelope described by the container format: a fresh nonce,
// the sealed key, and its authentication tag concatenated together.
//
// This mirrors the password-wrapped-secret envelope in the teacher's own
// cabin.go, narrowed to a single fixed-size secret (the FEK) wrapped under a
// raw key (the MK) instead of a scrypt-derived password key.
package wrap

import (
	"fmt"

	"github.com/cloudnexus/cloudvault/cvcodes"
	"github.com/cloudnexus/cloudvault/generator/randomness"
	"github.com/cloudnexus/cloudvault/internal/aead"
)

// aadWrapV1 binds every wrapped FEK to this package's envelope version so a
// ciphertext produced here can never be mistaken for a different AEAD use
// of the same Master Key.
var aadWrapV1 = []byte("fek-wrap-v1")

// WrappedLength is the fixed size, in bytes, of a wrapped FEK envelope:
// nonce(12) || ciphertext(32) || tag(16).
const WrappedLength = aead.NonceSize + 32 + aead.Overhead

// FEK wraps a File Encryption Key under a Master Key. mk must be exactly
// aead.KeySize bytes and fek exactly aead.KeySize bytes. Returns the
// WrappedLength-byte envelope nonce||ciphertext||tag.
func FEK(mk, fek []byte) ([]byte, error) {
	if len(fek) != aead.KeySize {
		return nil, fmt.Errorf("%w: FEK must be %d bytes, got %d", cvcodes.ErrInvalidKeySize, aead.KeySize, len(fek))
	}

	nonce, err := randomness.Bytes(aead.NonceSize)
	if err != nil {
		return nil, fmt.Errorf("unable to generate wrap nonce: %w", err)
	}

	ciphertext, err := aead.Seal(mk, nonce, fek, aadWrapV1)
	if err != nil {
		return nil, fmt.Errorf("unable to wrap FEK: %w", err)
	}

	wrapped := make([]byte, 0, WrappedLength)
	wrapped = append(wrapped, nonce...)
	wrapped = append(wrapped, ciphertext...)
	return wrapped, nil
}

// UnwrapFEK recovers the File Encryption Key from a wrapped envelope
// produced by FEK, using the same Master Key. Returns cvcodes.ErrDecryptionFailed
// on a wrong key or corrupt envelope without distinguishing the two, per the
// container format's "don't reveal which" policy. An envelope that is not
// WrappedLength bytes long is rejected earlier with cvcodes.ErrInvalidFormat.
func UnwrapFEK(mk, wrapped []byte) ([]byte, error) {
	if len(wrapped) != WrappedLength {
		return nil, fmt.Errorf("%w: wrapped FEK must be %d bytes, got %d", cvcodes.ErrInvalidFormat, WrappedLength, len(wrapped))
	}

	nonce := wrapped[:aead.NonceSize]
	ciphertext := wrapped[aead.NonceSize:]

	fek, err := aead.Open(mk, nonce, ciphertext, aadWrapV1)
	if err != nil {
		return nil, fmt.Errorf("unable to unwrap FEK: %w", err)
	}
	return fek, nil
}
