package streamcrypt_test

import (
	"bytes"
	"fmt"

	"github.com/cloudnexus/cloudvault/internal/aead"
	"github.com/cloudnexus/cloudvault/streamcrypt"
)

// ExampleEncryptFile demonstrates sealing a whole file under a Master Key
// and recovering it with DecryptFile. The container's nonces are random
// per run, so this example does not assert on the ciphertext's bytes —
// only that decryption recovers the original plaintext.
func ExampleEncryptFile() {
	mk := bytes.Repeat([]byte{0x01}, aead.KeySize)
	plaintext := []byte("quarterly report draft")

	ciphertext, err := streamcrypt.EncryptFile(mk, plaintext, 0, nil)
	if err != nil {
		panic(err)
	}

	recovered, err := streamcrypt.DecryptFile(mk, ciphertext, nil)
	if err != nil {
		panic(err)
	}

	fmt.Println(bytes.Equal(recovered, plaintext))
	// Output: true
}

// ExampleNewEncryptionContext demonstrates the chunk-by-chunk streaming
// API used when plaintext arrives incrementally instead of as one buffer.
func ExampleNewEncryptionContext() {
	mk := bytes.Repeat([]byte{0x02}, aead.KeySize)

	ctx, prefix, err := streamcrypt.NewEncryptionContext(mk)
	if err != nil {
		panic(err)
	}
	defer ctx.Finalize()

	chunk0, err := ctx.EncryptChunk([]byte("first chunk"), 0)
	if err != nil {
		panic(err)
	}
	chunk1, err := ctx.EncryptChunk([]byte("second chunk"), 1)
	if err != nil {
		panic(err)
	}

	body := append(chunk0, chunk1...)

	decCtx, err := streamcrypt.NewDecryptionContext(prefix, mk)
	if err != nil {
		panic(err)
	}
	defer decCtx.Finalize()

	var recovered []byte
	for len(body) > 0 {
		pt, n, err := decCtx.DecryptChunk(body)
		if err != nil {
			panic(err)
		}
		recovered = append(recovered, pt...)
		body = body[n:]
	}

	fmt.Println(string(recovered))
	// Output: first chunksecond chunk
}
