package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/cloudnexus/cloudvault/config"
	"github.com/cloudnexus/cloudvault/ioutil"
	atomicfile "github.com/cloudnexus/cloudvault/ioutil/atomic"

	"github.com/cloudnexus/cloudvault/internal/aead"
	"github.com/cloudnexus/cloudvault/streamcrypt"
)

func runEncrypt(args []string) error {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	mkHex := fs.String("mk-hex", "", "32-byte Master Key, hex-encoded (64 hex chars)")
	in := fs.String("in", "", "input plaintext file")
	out := fs.String("out", "", "output container file")
	chunkSize := fs.Int("chunk-size", 0, "plaintext chunk size in bytes (0 = default)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mk, err := decodeHexKey("mk-hex", *mkHex, aead.KeySize)
	if err != nil {
		return err
	}

	inFile, err := os.Open(*in)
	if err != nil {
		return fmt.Errorf("unable to open input file: %w", err)
	}
	defer inFile.Close()

	var plaintextBuf bytes.Buffer
	if _, err := ioutil.LimitCopy(&plaintextBuf, inFile, config.MaxOneShotFileSize); err != nil {
		return fmt.Errorf("unable to read input file: %w", err)
	}
	plaintext := plaintextBuf.Bytes()

	ciphertext, err := streamcrypt.EncryptFile(mk, plaintext, *chunkSize, func(processed, total int64) {
		fmt.Fprintf(os.Stderr, "encrypted %d/%d bytes\n", processed, total)
	})
	if err != nil {
		return fmt.Errorf("encryption failed: %w", err)
	}

	if err := atomicfile.WriteFile(*out, bytes.NewReader(ciphertext)); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(ciphertext), *out)
	return nil
}

func runDecrypt(args []string) error {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	mkHex := fs.String("mk-hex", "", "32-byte Master Key, hex-encoded (64 hex chars)")
	in := fs.String("in", "", "input container file")
	out := fs.String("out", "", "output plaintext file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mk, err := decodeHexKey("mk-hex", *mkHex, aead.KeySize)
	if err != nil {
		return err
	}

	inFile, err := os.Open(*in)
	if err != nil {
		return fmt.Errorf("unable to open input file: %w", err)
	}
	defer inFile.Close()

	var ciphertextBuf bytes.Buffer
	if _, err := ioutil.LimitCopy(&ciphertextBuf, inFile, config.MaxOneShotFileSize); err != nil {
		return fmt.Errorf("unable to read input file: %w", err)
	}
	ciphertext := ciphertextBuf.Bytes()

	plaintext, err := streamcrypt.DecryptFile(mk, ciphertext, func(processed, total int64) {
		fmt.Fprintf(os.Stderr, "decrypted %d/%d bytes\n", processed, total)
	})
	if err != nil {
		return fmt.Errorf("decryption failed: %w", err)
	}

	if err := atomicfile.WriteFile(*out, bytes.NewReader(plaintext)); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(plaintext), *out)
	return nil
}
