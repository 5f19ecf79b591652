package container

import (
	"encoding/binary"
	"fmt"

	"github.com/cloudnexus/cloudvault/config"
	"github.com/cloudnexus/cloudvault/crypto/canonicalization"
	"github.com/cloudnexus/cloudvault/cvcodes"
	"github.com/cloudnexus/cloudvault/internal/aead"
)

// ChunkHeaderSize is the size, in bytes, of a chunk record's metadata that
// precedes the ciphertext: index(4, LE) || plaintext_size(4, LE) || nonce(12).
const ChunkHeaderSize = 4 + 4 + aead.NonceSize

// ChunkOverhead is the total non-plaintext overhead of a chunk record:
// the ChunkHeaderSize metadata plus the trailing GCM tag.
const ChunkOverhead = ChunkHeaderSize + aead.Overhead

// MaxChunkPlaintextSize bounds plaintext_size to prevent a maliciously
// large value from driving an oversized allocation while parsing.
const MaxChunkPlaintextSize = config.MaxChunkPlaintextSize

// ChunkRecord is one self-authenticating unit of a container's ciphertext
// body: index(4, LE) || plaintext_size(4, LE) || nonce(12) ||
// ciphertext(plaintext_size) || tag(16).
type ChunkRecord struct {
	Index            uint32
	PlaintextSize    uint32
	Nonce            []byte // aead.NonceSize bytes
	CiphertextAndTag []byte // PlaintextSize + aead.Overhead bytes
}

// ChunkAAD returns the associated data bound into a chunk's authentication
// tag, canonically encoding index and plaintextSize as separate pieces so
// the two fields can never be confused with one another (the same
// technique the teacher uses in its own chunked/value AEAD paths to bind
// several fields into one AAD safely). This is what prevents chunk
// reordering and cross-file splicing from going undetected.
func ChunkAAD(index, plaintextSize uint32) []byte {
	indexBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(indexBytes, index)

	sizeBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(sizeBytes, plaintextSize)

	// Pieces are fixed-size and well below the canonicalization limits, so
	// this can only fail on a library bug.
	aad, err := canonicalization.PreAuthenticationEncoding(indexBytes, sizeBytes)
	if err != nil {
		panic(fmt.Sprintf("container: unreachable canonicalization failure: %v", err))
	}
	return aad
}

// EncodeChunk serializes a chunk record into a fresh slice.
func EncodeChunk(c ChunkRecord) []byte {
	buf := make([]byte, 0, ChunkHeaderSize+len(c.CiphertextAndTag))
	var hdr [ChunkHeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], c.Index)
	binary.LittleEndian.PutUint32(hdr[4:8], c.PlaintextSize)
	copy(hdr[8:8+aead.NonceSize], c.Nonce)

	buf = append(buf, hdr[:]...)
	buf = append(buf, c.CiphertextAndTag...)
	return buf
}

// DecodeChunk parses one chunk record from the front of buf, returning the
// record and the number of bytes it consumed. buf may contain trailing
// bytes belonging to subsequent chunks; only ChunkHeaderSize+plaintext_size+
// aead.Overhead bytes are consumed.
func DecodeChunk(buf []byte) (ChunkRecord, int, error) {
	if len(buf) < ChunkHeaderSize {
		return ChunkRecord{}, 0, fmt.Errorf("%w: chunk header needs %d bytes, got %d", cvcodes.ErrInvalidFormat, ChunkHeaderSize, len(buf))
	}

	index := binary.LittleEndian.Uint32(buf[0:4])
	plaintextSize := binary.LittleEndian.Uint32(buf[4:8])
	if plaintextSize > MaxChunkPlaintextSize {
		return ChunkRecord{}, 0, fmt.Errorf("%w: chunk plaintext size %d exceeds sanity bound %d", cvcodes.ErrInvalidFormat, plaintextSize, MaxChunkPlaintextSize)
	}

	nonce := make([]byte, aead.NonceSize)
	copy(nonce, buf[8:8+aead.NonceSize])

	total := ChunkHeaderSize + int(plaintextSize) + aead.Overhead
	if len(buf) < total {
		return ChunkRecord{}, 0, fmt.Errorf("%w: chunk needs %d bytes, got %d", cvcodes.ErrInvalidFormat, total, len(buf))
	}

	ciphertextAndTag := make([]byte, int(plaintextSize)+aead.Overhead)
	copy(ciphertextAndTag, buf[ChunkHeaderSize:total])

	return ChunkRecord{
		Index:            index,
		PlaintextSize:    plaintextSize,
		Nonce:            nonce,
		CiphertextAndTag: ciphertextAndTag,
	}, total, nil
}
