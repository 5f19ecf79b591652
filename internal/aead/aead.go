// Package aead provides the single-shot AES-256-GCM seal/open primitive that
// every other cloudvault package builds on. It is the only package in the
// module that touches crypto/cipher directly.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/cloudnexus/cloudvault/cvcodes"
)

// KeySize is the required AES-256 key length in bytes.
const KeySize = 32

// NonceSize is the required GCM nonce length in bytes.
const NonceSize = 12

// Overhead is the GCM authentication tag length in bytes.
const Overhead = 16

// Seal encrypts plaintext under key using AES-256-GCM with the given nonce
// and optional associated data, returning ciphertext with the 16-byte tag
// appended. key must be exactly KeySize bytes and nonce exactly NonceSize
// bytes; aad may be nil.
func Seal(key, nonce, plaintext, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", cvcodes.ErrInvalidKeySize, gcm.NonceSize(), len(nonce))
	}

	return gcm.Seal(nil, nonce, plaintext, aad), nil
}

// Open authenticates and decrypts ciphertextWithTag under key using the
// given nonce and associated data. Any tag mismatch fails closed: no
// plaintext is ever returned alongside an error.
func Open(key, nonce, ciphertextWithTag, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", cvcodes.ErrInvalidKeySize, gcm.NonceSize(), len(nonce))
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertextWithTag, aad)
	if err != nil {
		// Never leak partial/garbage plaintext on auth failure.
		return nil, fmt.Errorf("%w: tag verification failed", cvcodes.ErrDecryptionFailed)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", cvcodes.ErrInvalidKeySize, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize block cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize GCM mode: %w", err)
	}

	return gcm, nil
}
