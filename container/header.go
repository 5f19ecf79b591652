// Package container implements the wire format shared by every cloudvault
// ciphertext: a 12-byte main header, a wrapped File Encryption Key envelope,
// and a sequence of self-authenticating chunk records.
//
// Layout:
//
//	MainHeader(12) || WrappedFEK(wrapped_fek_len) || Chunk0 || Chunk1 || ...
//
// All multi-byte integers are little-endian. This package only encodes and
// decodes the framing — it never touches key material or ciphertext
// semantics, which live in streamcrypt and internal/wrap.
package container

import (
	"encoding/binary"
	"fmt"

	"github.com/cloudnexus/cloudvault/config"
	"github.com/cloudnexus/cloudvault/cvcodes"
)

// Magic identifies a cloudvault container. Frozen at v1; never change these
// bytes without bumping Version and adding a new parse path.
var Magic = [4]byte{'C', 'N', 'X', '1'}

// Version is the only main-header format version this package understands.
const Version = 1

// HeaderSize is the fixed size, in bytes, of the main header:
// magic(4) || version(1) || reserved(3) || wrapped_fek_len(4, LE).
const HeaderSize = 12

// MaxWrappedFEKLen bounds wrapped_fek_len to prevent a maliciously large
// value from driving an oversized allocation while parsing.
const MaxWrappedFEKLen = config.MaxWrappedFEKLen

// MainHeader is the fixed 12-byte prefix preceding the wrapped FEK.
type MainHeader struct {
	Version       uint8
	WrappedFEKLen uint32
}

// EncodeMainHeader serializes h into a fresh HeaderSize-byte slice.
// Reserved bytes are always written as zero.
func EncodeMainHeader(h MainHeader) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], Magic[:])
	buf[4] = h.Version
	// buf[5:8] reserved, left zero.
	binary.LittleEndian.PutUint32(buf[8:12], h.WrappedFEKLen)
	return buf
}

// DecodeMainHeader parses the fixed-size main header from the front of buf.
// Reserved bytes are ignored, per the format's forward-compatibility rule.
func DecodeMainHeader(buf []byte) (MainHeader, error) {
	if len(buf) < HeaderSize {
		return MainHeader{}, fmt.Errorf("%w: main header needs %d bytes, got %d", cvcodes.ErrInvalidFormat, HeaderSize, len(buf))
	}
	if [4]byte(buf[0:4]) != Magic {
		return MainHeader{}, fmt.Errorf("%w: bad magic", cvcodes.ErrInvalidFormat)
	}

	version := buf[4]
	if version != Version {
		return MainHeader{}, fmt.Errorf("%w: unsupported version %d", cvcodes.ErrInvalidFormat, version)
	}

	wrappedLen := binary.LittleEndian.Uint32(buf[8:12])
	if wrappedLen > MaxWrappedFEKLen {
		return MainHeader{}, fmt.Errorf("%w: wrapped FEK length %d exceeds sanity bound %d", cvcodes.ErrInvalidFormat, wrappedLen, MaxWrappedFEKLen)
	}

	return MainHeader{Version: version, WrappedFEKLen: wrappedLen}, nil
}

// PrefixSize returns the total size of MainHeader + wrapped FEK for a
// header with the given WrappedFEKLen, i.e. the number of bytes a caller
// must buffer before any chunk record can be parsed.
func (h MainHeader) PrefixSize() int {
	return HeaderSize + int(h.WrappedFEKLen)
}
