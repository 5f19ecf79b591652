package streamcrypt

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptFile_RoundTrip(t *testing.T) {
	t.Parallel()

	mk := testMK(t)
	plaintext := bytes.Repeat([]byte("cloudvault-payload-"), 10000) // spans multiple small chunks

	var progressCalls []int64
	ciphertext, err := EncryptFile(mk, plaintext, 256, func(processed, total int64) {
		progressCalls = append(progressCalls, processed)
		if processed > total {
			t.Fatalf("processed %d exceeds total %d", processed, total)
		}
	})
	if err != nil {
		t.Fatalf("EncryptFile: %v", err)
	}
	if len(progressCalls) == 0 {
		t.Fatalf("expected progress callback to fire")
	}
	for i := 1; i < len(progressCalls); i++ {
		if progressCalls[i] < progressCalls[i-1] {
			t.Fatalf("progress went backwards: %v", progressCalls)
		}
	}

	got, err := DecryptFile(mk, ciphertext, nil)
	if err != nil {
		t.Fatalf("DecryptFile: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(plaintext))
	}
}

func TestEncryptDecryptFile_EmptyPlaintext(t *testing.T) {
	t.Parallel()

	mk := testMK(t)
	ciphertext, err := EncryptFile(mk, nil, 0, nil)
	if err != nil {
		t.Fatalf("EncryptFile: %v", err)
	}

	got, err := DecryptFile(mk, ciphertext, nil)
	if err != nil {
		t.Fatalf("DecryptFile: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty plaintext, got %d bytes", len(got))
	}
}

func TestDecryptFile_WrongKeyFails(t *testing.T) {
	t.Parallel()

	mk := testMK(t)
	wrongMK := bytes.Repeat([]byte{0x77}, len(mk))

	ciphertext, err := EncryptFile(mk, []byte("secret"), 0, nil)
	if err != nil {
		t.Fatalf("EncryptFile: %v", err)
	}

	if _, err := DecryptFile(wrongMK, ciphertext, nil); err == nil {
		t.Fatalf("expected decryption failure with wrong master key")
	}
}
