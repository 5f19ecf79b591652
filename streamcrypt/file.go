package streamcrypt

import (
	"fmt"

	"github.com/cloudnexus/cloudvault/config"
	"github.com/cloudnexus/cloudvault/container"
	"github.com/cloudnexus/cloudvault/cvcodes"
)

// ProgressFunc is invoked after each chunk processed by the one-shot
// helpers. bytesProcessed is monotonically non-decreasing and never
// exceeds totalBytes. Go idiom drops the C-shaped user_data parameter;
// callers close over their own state instead.
type ProgressFunc func(bytesProcessed, totalBytes int64)

// EncryptFile encrypts plaintext in full under mk, using chunkSize-sized
// chunks (config.DefaultChunkSize if chunkSize is 0), and returns the
// complete container: MainHeader || WrappedFEK || Chunk0 || Chunk1 || ...
func EncryptFile(mk, plaintext []byte, chunkSize int, progress ProgressFunc) ([]byte, error) {
	if chunkSize <= 0 {
		chunkSize = config.DefaultChunkSize
	}

	ctx, prefix, err := NewEncryptionContext(mk)
	if err != nil {
		return nil, err
	}
	defer ctx.Finalize()

	total := int64(len(plaintext))
	numChunks := (len(plaintext) + chunkSize - 1) / chunkSize
	if len(plaintext) == 0 {
		numChunks = 1 // a zero-length file still produces one empty chunk
	}

	out := make([]byte, 0, len(prefix)+numChunks*(container.ChunkOverhead+chunkSize))
	out = append(out, prefix...)

	var processed int64
	for index := 0; index < numChunks; index++ {
		start := index * chunkSize
		end := start + chunkSize
		if end > len(plaintext) {
			end = len(plaintext)
		}

		record, err := ctx.EncryptChunk(plaintext[start:end], uint32(index))
		if err != nil {
			return nil, err
		}
		out = append(out, record...)

		processed += int64(end - start)
		if progress != nil {
			progress(processed, total)
		}
	}

	return out, nil
}

// DecryptFile reverses EncryptFile: it parses the container prefix,
// unwraps the File Encryption Key under mk, and decrypts every chunk in
// order, returning the concatenated plaintext.
func DecryptFile(mk, ciphertext []byte, progress ProgressFunc) ([]byte, error) {
	header, err := container.DecodeMainHeader(ciphertext)
	if err != nil {
		return nil, err
	}
	prefixSize := header.PrefixSize()
	if len(ciphertext) < prefixSize {
		return nil, fmt.Errorf("%w: container prefix needs %d bytes, got %d", cvcodes.ErrInvalidFormat, prefixSize, len(ciphertext))
	}

	ctx, err := NewDecryptionContext(ciphertext[:prefixSize], mk)
	if err != nil {
		return nil, err
	}
	defer ctx.Finalize()

	body := ciphertext[prefixSize:]
	total := int64(len(body))

	var plaintext []byte
	var processed int64
	for len(body) > 0 {
		chunk, n, err := ctx.DecryptChunk(body)
		if err != nil {
			return nil, err
		}
		plaintext = append(plaintext, chunk...)
		body = body[n:]

		processed += int64(n)
		if progress != nil {
			progress(processed, total)
		}
	}

	return plaintext, nil
}
