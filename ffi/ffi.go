// Package ffi is the seam where a cgo `//export` surface would sit. It
// converts owned Go values — encryption/decryption contexts, copy state,
// and released byte buffers — into opaque handles a C ABI caller can hold
// without ever dereferencing Go memory directly.
//
// Grounded on spec.md's "Design Notes" on opaque handles and buffer
// ownership: contexts are allocated and released by the core only, and
// exposed through a stable handle table instead of raw pointers; released
// buffers are tracked in a ledger so FreeBuffer can dispatch without the
// caller knowing how the buffer was allocated. The teacher has no FFI
// layer of its own, so this package is built fresh in the module's error
// and naming idiom (sentinel errors from cvcodes, %w wrapping throughout).
package ffi

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cloudnexus/cloudvault/cvcodes"
)

// Handle is an opaque, process-unique reference to a live context or
// buffer. The zero Handle is never issued and always denotes "invalid".
type Handle uint64

var nextHandle uint64

func allocHandle() Handle {
	return Handle(atomic.AddUint64(&nextHandle, 1))
}

// Finalizer is implemented by anything the ledger can release on the
// caller's behalf (streamcrypt.EncryptionContext.Finalize and
// streamcrypt.DecryptionContext.Finalize both satisfy it).
type Finalizer interface {
	Finalize()
}

// Ledger is a handle table mapping opaque handles to live Go values. The
// zero value is ready to use.
type Ledger struct {
	contexts sync.Map // Handle -> any
	buffers  sync.Map // Handle -> []byte
}

// Register allocates a fresh handle for v and stores it in the ledger.
func (l *Ledger) Register(v any) Handle {
	h := allocHandle()
	l.contexts.Store(h, v)
	return h
}

// Lookup retrieves the value registered under h, if any.
func (l *Ledger) Lookup(h Handle) (any, bool) {
	return l.contexts.Load(h)
}

// Release finalizes (if the value implements Finalizer) and removes the
// entry for h. Returns cvcodes.ErrNullPointer if h is not a live handle.
func (l *Ledger) Release(h Handle) error {
	v, ok := l.contexts.LoadAndDelete(h)
	if !ok {
		return fmt.Errorf("%w: handle %d is not live", cvcodes.ErrNullPointer, h)
	}
	if f, ok := v.(Finalizer); ok {
		f.Finalize()
	}
	return nil
}

// RegisterBuffer records an owned byte slice under a fresh handle, as the
// adapter a `malloc`-backed FFI buffer would be handed through.
func (l *Ledger) RegisterBuffer(b []byte) Handle {
	h := allocHandle()
	l.buffers.Store(h, b)
	return h
}

// Buffer retrieves the buffer registered under h.
func (l *Ledger) Buffer(h Handle) ([]byte, bool) {
	v, ok := l.buffers.Load(h)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// FreeBuffer releases the buffer registered under h. Returns
// cvcodes.ErrNullPointer if h is not a live buffer handle.
func (l *Ledger) FreeBuffer(h Handle) error {
	if _, ok := l.buffers.LoadAndDelete(h); !ok {
		return fmt.Errorf("%w: buffer handle %d is not live", cvcodes.ErrNullPointer, h)
	}
	return nil
}
