package container

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cloudnexus/cloudvault/cvcodes"
)

func TestEncodeDecodeMainHeader_RoundTrip(t *testing.T) {
	t.Parallel()

	h := MainHeader{Version: Version, WrappedFEKLen: 60}
	buf := EncodeMainHeader(h)
	if len(buf) != HeaderSize {
		t.Fatalf("expected %d bytes, got %d", HeaderSize, len(buf))
	}
	if !bytes.Equal(buf[0:4], Magic[:]) {
		t.Fatalf("expected magic %q, got %q", Magic, buf[0:4])
	}
	// Reserved bytes must be zero on write.
	if buf[5] != 0 || buf[6] != 0 || buf[7] != 0 {
		t.Fatalf("expected reserved bytes to be zero, got %v", buf[5:8])
	}

	got, err := DecodeMainHeader(buf)
	if err != nil {
		t.Fatalf("DecodeMainHeader: %v", err)
	}
	if got != h {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, h)
	}
}

func TestDecodeMainHeader_IgnoresReservedBytes(t *testing.T) {
	t.Parallel()

	buf := EncodeMainHeader(MainHeader{Version: Version, WrappedFEKLen: 60})
	buf[5], buf[6], buf[7] = 0xFF, 0xFF, 0xFF

	if _, err := DecodeMainHeader(buf); err != nil {
		t.Fatalf("expected reserved bytes to be ignored, got error: %v", err)
	}
}

func TestDecodeMainHeader_TooShort(t *testing.T) {
	t.Parallel()

	if _, err := DecodeMainHeader(make([]byte, 4)); !errors.Is(err, cvcodes.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestDecodeMainHeader_BadMagic(t *testing.T) {
	t.Parallel()

	buf := EncodeMainHeader(MainHeader{Version: Version, WrappedFEKLen: 60})
	buf[0] = 'X'

	if _, err := DecodeMainHeader(buf); !errors.Is(err, cvcodes.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestDecodeMainHeader_UnknownVersion(t *testing.T) {
	t.Parallel()

	buf := EncodeMainHeader(MainHeader{Version: Version, WrappedFEKLen: 60})
	buf[4] = 99

	if _, err := DecodeMainHeader(buf); !errors.Is(err, cvcodes.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestDecodeMainHeader_WrappedFEKLenTooLarge(t *testing.T) {
	t.Parallel()

	buf := EncodeMainHeader(MainHeader{Version: Version, WrappedFEKLen: MaxWrappedFEKLen + 1})

	if _, err := DecodeMainHeader(buf); !errors.Is(err, cvcodes.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestMainHeader_PrefixSize(t *testing.T) {
	t.Parallel()

	h := MainHeader{Version: Version, WrappedFEKLen: 60}
	if got, want := h.PrefixSize(), HeaderSize+60; got != want {
		t.Fatalf("PrefixSize() = %d, want %d", got, want)
	}
}
