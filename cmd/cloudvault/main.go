// cloudvault is a CLI exercising the library end-to-end: encrypting and
// decrypting a local file, deriving a key from a password, copying a file
// through the unified copy orchestrator, and scanning a folder to JSON.
//
// Usage:
//
//	cloudvault encrypt -mk-hex <64 hex chars> -in <file> -out <file>
//	cloudvault decrypt -mk-hex <64 hex chars> -in <file> -out <file>
//	cloudvault derive-key -password <password> -salt-hex <hex> -iterations <n>
//	cloudvault copy -in <file> -out <file> -chunk-size <bytes>
//	cloudvault scan -root <dir>
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "encrypt":
		err = runEncrypt(os.Args[2:])
	case "decrypt":
		err = runDecrypt(os.Args[2:])
	case "derive-key":
		err = runDeriveKey(os.Args[2:])
	case "copy":
		err = runCopy(os.Args[2:])
	case "scan":
		err = runScan(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "cloudvault: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: cloudvault <encrypt|decrypt|derive-key|copy|scan> [flags]")
}

func decodeHexKey(flagName, value string, wantLen int) ([]byte, error) {
	key, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", flagName, err)
	}
	if len(key) != wantLen {
		return nil, fmt.Errorf("%s must decode to %d bytes, got %d", flagName, wantLen, len(key))
	}
	return key, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
