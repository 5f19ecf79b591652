package streamcrypt

import (
	"fmt"

	"github.com/cloudnexus/cloudvault/container"
	"github.com/cloudnexus/cloudvault/cvcodes"
	"github.com/cloudnexus/cloudvault/generator/randomness"
	"github.com/cloudnexus/cloudvault/internal/aead"
	"github.com/cloudnexus/cloudvault/internal/wrap"
)

// EncryptionContext drives chunk-by-chunk encryption under a single File
// Encryption Key. It is created by NewEncryptionContext and must be
// finalized with Finalize once the caller has no more plaintext.
//
// State machine: Ready -> (EncryptChunk)* -> Finalized. EncryptChunk after
// Finalize returns an error.
type EncryptionContext struct {
	fek       []byte
	nextIndex uint32
	finalized bool
}

// NewEncryptionContext validates mk, generates a fresh FEK, wraps it under
// mk, and returns a ready-to-use context along with the prefix bytes
// (MainHeader || WrappedFEK) the caller must persist before any chunk
// record. mk must be exactly aead.KeySize bytes.
func NewEncryptionContext(mk []byte) (*EncryptionContext, []byte, error) {
	if len(mk) != aead.KeySize {
		return nil, nil, fmt.Errorf("%w: master key must be %d bytes, got %d", cvcodes.ErrInvalidKeySize, aead.KeySize, len(mk))
	}

	fek, err := randomness.Bytes(aead.KeySize)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to generate file encryption key: %w", err)
	}

	wrappedFEK, err := wrap.FEK(mk, fek)
	if err != nil {
		zero(fek)
		return nil, nil, fmt.Errorf("unable to wrap file encryption key: %w", err)
	}

	header := container.EncodeMainHeader(container.MainHeader{
		Version:       container.Version,
		WrappedFEKLen: uint32(len(wrappedFEK)),
	})

	prefix := make([]byte, 0, len(header)+len(wrappedFEK))
	prefix = append(prefix, header...)
	prefix = append(prefix, wrappedFEK...)

	return &EncryptionContext{fek: fek}, prefix, nil
}

// EncryptChunk seals plaintext as the next chunk in the stream. index must
// equal the context's next expected index; a zero-length plaintext is
// permitted and produces a valid empty-payload chunk. Returns the encoded
// chunk record ready to append to the ciphertext body.
func (ctx *EncryptionContext) EncryptChunk(plaintext []byte, index uint32) ([]byte, error) {
	if ctx.finalized {
		return nil, fmt.Errorf("%w: encryption context already finalized", cvcodes.ErrInvalidFormat)
	}
	if index != ctx.nextIndex {
		return nil, fmt.Errorf("%w: expected chunk index %d, got %d", cvcodes.ErrInvalidFormat, ctx.nextIndex, index)
	}

	nonce, err := randomness.Bytes(aead.NonceSize)
	if err != nil {
		return nil, fmt.Errorf("unable to generate chunk nonce: %w", err)
	}

	aad := container.ChunkAAD(index, uint32(len(plaintext)))
	ciphertext, err := aead.Seal(ctx.fek, nonce, plaintext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: chunk %d", cvcodes.ErrEncryptionFailed, index)
	}

	record := container.EncodeChunk(container.ChunkRecord{
		Index:            index,
		PlaintextSize:    uint32(len(plaintext)),
		Nonce:            nonce,
		CiphertextAndTag: ciphertext,
	})

	ctx.nextIndex++
	return record, nil
}

// Finalize zeroes the context's File Encryption Key and marks it unusable.
// Safe to call more than once.
func (ctx *EncryptionContext) Finalize() {
	zero(ctx.fek)
	ctx.finalized = true
}
