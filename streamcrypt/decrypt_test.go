package streamcrypt

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cloudnexus/cloudvault/cvcodes"
)

func TestDecryptionContext_WrongMasterKeyFails(t *testing.T) {
	t.Parallel()

	mk1 := testMK(t)
	mk2 := bytes.Repeat([]byte{0x99}, len(mk1))

	_, prefix, err := NewEncryptionContext(mk1)
	if err != nil {
		t.Fatalf("NewEncryptionContext: %v", err)
	}

	if _, err := NewDecryptionContext(prefix, mk2); !errors.Is(err, cvcodes.ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestDecryptChunk_IndexMismatchIsTerminal(t *testing.T) {
	t.Parallel()

	mk := testMK(t)
	encCtx, prefix, err := NewEncryptionContext(mk)
	if err != nil {
		t.Fatalf("NewEncryptionContext: %v", err)
	}
	defer encCtx.Finalize()

	r0, err := encCtx.EncryptChunk([]byte("a"), 0)
	if err != nil {
		t.Fatalf("EncryptChunk(0): %v", err)
	}
	r1, err := encCtx.EncryptChunk([]byte("b"), 1)
	if err != nil {
		t.Fatalf("EncryptChunk(1): %v", err)
	}

	decCtx, err := NewDecryptionContext(prefix, mk)
	if err != nil {
		t.Fatalf("NewDecryptionContext: %v", err)
	}
	defer decCtx.Finalize()

	// Feed chunk 1 first: index mismatch.
	if _, _, err := decCtx.DecryptChunk(r1); !errors.Is(err, cvcodes.ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed on out-of-order chunk, got %v", err)
	}

	// Context is now permanently failed, even for the correct next chunk.
	if _, _, err := decCtx.DecryptChunk(r0); !errors.Is(err, cvcodes.ErrDecryptionFailed) {
		t.Fatalf("expected context to stay failed, got %v", err)
	}
}

func TestDecryptChunk_TamperedCiphertextIsTerminal(t *testing.T) {
	t.Parallel()

	mk := testMK(t)
	encCtx, prefix, err := NewEncryptionContext(mk)
	if err != nil {
		t.Fatalf("NewEncryptionContext: %v", err)
	}
	defer encCtx.Finalize()

	record, err := encCtx.EncryptChunk([]byte("payload"), 0)
	if err != nil {
		t.Fatalf("EncryptChunk: %v", err)
	}
	record[len(record)-1] ^= 0xFF

	decCtx, err := NewDecryptionContext(prefix, mk)
	if err != nil {
		t.Fatalf("NewDecryptionContext: %v", err)
	}
	defer decCtx.Finalize()

	if _, _, err := decCtx.DecryptChunk(record); !errors.Is(err, cvcodes.ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}
	// Retrying the same (tampered) bytes must still fail, not recover.
	if _, _, err := decCtx.DecryptChunk(record); !errors.Is(err, cvcodes.ErrDecryptionFailed) {
		t.Fatalf("expected context to remain failed, got %v", err)
	}
}

func TestDecryptChunk_RejectsAfterFinalize(t *testing.T) {
	t.Parallel()

	mk := testMK(t)
	encCtx, prefix, err := NewEncryptionContext(mk)
	if err != nil {
		t.Fatalf("NewEncryptionContext: %v", err)
	}
	record, err := encCtx.EncryptChunk([]byte("x"), 0)
	if err != nil {
		t.Fatalf("EncryptChunk: %v", err)
	}
	encCtx.Finalize()

	decCtx, err := NewDecryptionContext(prefix, mk)
	if err != nil {
		t.Fatalf("NewDecryptionContext: %v", err)
	}
	decCtx.Finalize()

	if _, _, err := decCtx.DecryptChunk(record); !errors.Is(err, cvcodes.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}
