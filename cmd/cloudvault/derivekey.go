package main

import (
	"encoding/hex"
	"flag"
	"fmt"

	"github.com/cloudnexus/cloudvault/generator/randomness"
	"github.com/cloudnexus/cloudvault/internal/kdf"
)

func runDeriveKey(args []string) error {
	fs := flag.NewFlagSet("derive-key", flag.ExitOnError)
	password := fs.String("password", "", "password to derive a Master Key from")
	saltHex := fs.String("salt-hex", "", "hex-encoded salt (generated and printed if omitted)")
	iterations := fs.Uint("iterations", kdf.MinRecommendedIterations, "PBKDF2 iteration count")
	if err := fs.Parse(args); err != nil {
		return err
	}

	saltHexValue := *saltHex
	if saltHexValue == "" {
		generated, err := randomness.Hex(32)
		if err != nil {
			return fmt.Errorf("unable to generate salt: %w", err)
		}
		saltHexValue = generated
		fmt.Fprintf(fs.Output(), "generated salt: %s\n", saltHexValue)
	}

	salt, err := hex.DecodeString(saltHexValue)
	if err != nil {
		return fmt.Errorf("invalid salt-hex: %w", err)
	}

	key, err := kdf.DeriveKey(*password, salt, uint32(*iterations))
	if err != nil {
		return fmt.Errorf("key derivation failed: %w", err)
	}

	fmt.Println(hex.EncodeToString(key))
	return nil
}
