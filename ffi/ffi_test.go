package ffi

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cloudnexus/cloudvault/cvcodes"
	"github.com/cloudnexus/cloudvault/internal/aead"
	"github.com/cloudnexus/cloudvault/streamcrypt"
)

func TestLedger_RegisterLookupRelease(t *testing.T) {
	t.Parallel()

	mk := bytes.Repeat([]byte{0x01}, aead.KeySize)
	ctx, _, err := streamcrypt.NewEncryptionContext(mk)
	if err != nil {
		t.Fatalf("NewEncryptionContext: %v", err)
	}

	var l Ledger
	h := l.Register(ctx)
	if h == 0 {
		t.Fatalf("expected non-zero handle")
	}

	got, ok := l.Lookup(h)
	if !ok {
		t.Fatalf("expected handle to resolve")
	}
	if got.(*streamcrypt.EncryptionContext) != ctx {
		t.Fatalf("lookup returned a different context")
	}

	if err := l.Release(h); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, ok := l.Lookup(h); ok {
		t.Fatalf("expected handle to be gone after release")
	}
}

func TestLedger_ReleaseUnknownHandle(t *testing.T) {
	t.Parallel()

	var l Ledger
	if err := l.Release(Handle(9999)); !errors.Is(err, cvcodes.ErrNullPointer) {
		t.Fatalf("expected ErrNullPointer, got %v", err)
	}
}

func TestLedger_BufferRegisterAndFree(t *testing.T) {
	t.Parallel()

	var l Ledger
	h := l.RegisterBuffer([]byte("payload"))

	got, ok := l.Buffer(h)
	if !ok || !bytes.Equal(got, []byte("payload")) {
		t.Fatalf("expected buffer to resolve to original content, got %q ok=%v", got, ok)
	}

	if err := l.FreeBuffer(h); err != nil {
		t.Fatalf("FreeBuffer: %v", err)
	}
	if _, ok := l.Buffer(h); ok {
		t.Fatalf("expected buffer handle to be gone after free")
	}
}

func TestFreeBuffer_UnknownHandle(t *testing.T) {
	t.Parallel()

	var l Ledger
	if err := l.FreeBuffer(Handle(12345)); !errors.Is(err, cvcodes.ErrNullPointer) {
		t.Fatalf("expected ErrNullPointer, got %v", err)
	}
}

func TestErrorCode_MapsKnownSentinels(t *testing.T) {
	t.Parallel()

	if got := ErrorCode(nil); got != cvcodes.Success {
		t.Fatalf("expected Success for nil error, got %v", got)
	}
	if got := ErrorCode(cvcodes.ErrDecryptionFailed); got != cvcodes.DecryptionFail {
		t.Fatalf("expected DecryptionFail, got %v", got)
	}
}
