package wrap

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cloudnexus/cloudvault/cvcodes"
	"github.com/cloudnexus/cloudvault/internal/aead"
)

func TestFEK_RoundTrip(t *testing.T) {
	t.Parallel()

	mk := bytes.Repeat([]byte{0x11}, aead.KeySize)
	fek := bytes.Repeat([]byte{0x22}, aead.KeySize)

	wrapped, err := FEK(mk, fek)
	if err != nil {
		t.Fatalf("FEK: %v", err)
	}
	if len(wrapped) != WrappedLength {
		t.Fatalf("expected %d byte envelope, got %d", WrappedLength, len(wrapped))
	}

	got, err := UnwrapFEK(mk, wrapped)
	if err != nil {
		t.Fatalf("UnwrapFEK: %v", err)
	}
	if !bytes.Equal(got, fek) {
		t.Fatalf("unwrap mismatch: got %x want %x", got, fek)
	}
}

func TestFEK_DistinctNoncesPerCall(t *testing.T) {
	t.Parallel()

	mk := bytes.Repeat([]byte{0x33}, aead.KeySize)
	fek := bytes.Repeat([]byte{0x44}, aead.KeySize)

	a, err := FEK(mk, fek)
	if err != nil {
		t.Fatalf("FEK: %v", err)
	}
	b, err := FEK(mk, fek)
	if err != nil {
		t.Fatalf("FEK: %v", err)
	}
	if bytes.Equal(a[:aead.NonceSize], b[:aead.NonceSize]) {
		t.Fatalf("expected distinct nonces across calls")
	}
	if bytes.Equal(a, b) {
		t.Fatalf("expected distinct envelopes across calls")
	}
}

func TestUnwrapFEK_WrongMasterKey(t *testing.T) {
	t.Parallel()

	mk1 := bytes.Repeat([]byte{0x01}, aead.KeySize)
	mk2 := bytes.Repeat([]byte{0x02}, aead.KeySize)
	fek := bytes.Repeat([]byte{0x55}, aead.KeySize)

	wrapped, err := FEK(mk1, fek)
	if err != nil {
		t.Fatalf("FEK: %v", err)
	}

	if _, err := UnwrapFEK(mk2, wrapped); !errors.Is(err, cvcodes.ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestUnwrapFEK_CorruptEnvelope(t *testing.T) {
	t.Parallel()

	mk := bytes.Repeat([]byte{0x06}, aead.KeySize)
	fek := bytes.Repeat([]byte{0x07}, aead.KeySize)

	wrapped, err := FEK(mk, fek)
	if err != nil {
		t.Fatalf("FEK: %v", err)
	}
	wrapped[len(wrapped)-1] ^= 0xFF

	if _, err := UnwrapFEK(mk, wrapped); !errors.Is(err, cvcodes.ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestUnwrapFEK_WrongLength(t *testing.T) {
	t.Parallel()

	mk := bytes.Repeat([]byte{0x08}, aead.KeySize)

	if _, err := UnwrapFEK(mk, []byte("too short")); !errors.Is(err, cvcodes.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestFEK_RejectsWrongSizedFEK(t *testing.T) {
	t.Parallel()

	mk := bytes.Repeat([]byte{0x09}, aead.KeySize)

	if _, err := FEK(mk, []byte("short")); !errors.Is(err, cvcodes.ErrInvalidKeySize) {
		t.Fatalf("expected ErrInvalidKeySize, got %v", err)
	}
}
