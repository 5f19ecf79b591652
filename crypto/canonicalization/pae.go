package canonicalization

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	maxPieceSize  = 64 * 1024 // 64Kb
	maxPieceCount = 25
)

var (
	// ErrPieceTooLarge is raised when one piece size is larger than the accepted size.
	ErrPieceTooLarge = errors.New("at least one piece is too large")
	// ErrTooManyPieces is raised when the pieces count is larger than the accepted count.
	ErrTooManyPieces = errors.New("too many pieces provided")
)

// PreAuthenticationEncoding implements the pre-authenticated-encoding (PAE)
// primitive cloudvault uses to build associated data for its AEAD calls
// whenever more than one logical field must be bound into a single tag.
//
// container.ChunkAAD calls this to bind a chunk's index and plaintext_size
// into one AAD value: without canonical framing, an attacker who can choose
// plaintext_size could shift bytes between the two fields and forge a
// different (index, size) pair that still authenticates under the same tag.
// Each piece is length-prefixed so the boundary between fields can never be
// ambiguous, the same technique PASETO uses for its own authentication
// padding:
// https://github.com/paseto-standard/paseto-spec/blob/master/docs/01-Protocol-Versions/Common.md#authentication-padding
//
// The encoding accepts at most maxPieceCount pieces (ErrTooManyPieces
// otherwise) of at most maxPieceSize bytes each (ErrPieceTooLarge
// otherwise), and lays them out as:
//
//	PieceCount(8) || ( PieceLen(8) || Piece(PieceLen) )*
func PreAuthenticationEncoding(pieces ...[]byte) ([]byte, error) {
	if len(pieces) == 0 {
		return nil, nil
	}
	if len(pieces) > maxPieceCount {
		return nil, fmt.Errorf("unable to prepare canonical form: %w", ErrTooManyPieces)
	}

	size := 8
	for _, p := range pieces {
		if len(p) > maxPieceSize {
			return nil, fmt.Errorf("unable to prepare canonical form: %w", ErrPieceTooLarge)
		}
		size += 8 + len(p)
	}

	output := make([]byte, size)
	binary.LittleEndian.PutUint64(output, uint64(len(pieces)))

	offset := 8
	for _, p := range pieces {
		binary.LittleEndian.PutUint64(output[offset:], uint64(len(p)))
		offset += 8
		offset += copy(output[offset:], p)
	}

	return output, nil
}
