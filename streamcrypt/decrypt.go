package streamcrypt

import (
	"fmt"

	"github.com/cloudnexus/cloudvault/container"
	"github.com/cloudnexus/cloudvault/cvcodes"
	"github.com/cloudnexus/cloudvault/internal/aead"
	"github.com/cloudnexus/cloudvault/internal/wrap"
)

// DecryptionContext drives chunk-by-chunk decryption under a single File
// Encryption Key recovered from a container prefix. It is created by
// NewDecryptionContext and must be finalized with Finalize once consumed.
//
// State machine: Ready -> (DecryptChunk)* -> Finalized | Failed. Failed is
// absorbing: once a chunk fails to decrypt, the context refuses all further
// operations rather than silently skipping corrupt data.
type DecryptionContext struct {
	fek           []byte
	expectedIndex uint32
	finalized     bool
	failed        bool
}

// NewDecryptionContext parses prefix (MainHeader || WrappedFEK) and unwraps
// the File Encryption Key under mk. Returns cvcodes.ErrInvalidFormat for a
// malformed prefix and cvcodes.ErrDecryptionFailed for a wrong mk or
// corrupt wrapped-FEK envelope.
func NewDecryptionContext(prefix, mk []byte) (*DecryptionContext, error) {
	if len(mk) != aead.KeySize {
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d", cvcodes.ErrInvalidKeySize, aead.KeySize, len(mk))
	}

	header, err := container.DecodeMainHeader(prefix)
	if err != nil {
		return nil, err
	}
	if len(prefix) < header.PrefixSize() {
		return nil, fmt.Errorf("%w: prefix needs %d bytes, got %d", cvcodes.ErrInvalidFormat, header.PrefixSize(), len(prefix))
	}

	wrappedFEK := prefix[container.HeaderSize:header.PrefixSize()]
	fek, err := wrap.UnwrapFEK(mk, wrappedFEK)
	if err != nil {
		return nil, err
	}

	return &DecryptionContext{fek: fek}, nil
}

// DecryptChunk parses and opens the next chunk record from the front of
// buf, returning the recovered plaintext and the number of bytes consumed.
// Any failure — index mismatch or AEAD authentication failure — is
// terminal: the context marks itself Failed and refuses all subsequent
// calls, including on a previously-healthy context.
func (ctx *DecryptionContext) DecryptChunk(buf []byte) ([]byte, int, error) {
	if ctx.finalized {
		return nil, 0, fmt.Errorf("%w: decryption context already finalized", cvcodes.ErrInvalidFormat)
	}
	if ctx.failed {
		return nil, 0, fmt.Errorf("%w: decryption context previously failed, discard it", cvcodes.ErrDecryptionFailed)
	}

	record, n, err := container.DecodeChunk(buf)
	if err != nil {
		ctx.failed = true
		return nil, 0, err
	}
	if record.Index != ctx.expectedIndex {
		ctx.failed = true
		return nil, 0, fmt.Errorf("%w: expected chunk index %d, got %d", cvcodes.ErrDecryptionFailed, ctx.expectedIndex, record.Index)
	}

	aadBytes := container.ChunkAAD(record.Index, record.PlaintextSize)
	plaintext, err := aead.Open(ctx.fek, record.Nonce, record.CiphertextAndTag, aadBytes)
	if err != nil {
		ctx.failed = true
		return nil, 0, err
	}

	ctx.expectedIndex++
	return plaintext, n, nil
}

// Finalize zeroes the context's File Encryption Key and marks it unusable.
// Safe to call more than once.
func (ctx *DecryptionContext) Finalize() {
	zero(ctx.fek)
	ctx.finalized = true
}
