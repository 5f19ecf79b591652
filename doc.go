// Package cloudvault provides chunked, authenticated encryption for
// cloud-to-cloud file transfer under a two-tier key hierarchy: a long-lived
// Master Key wraps a per-file File Encryption Key, which in turn seals the
// file's content in self-describing, reorder-resistant chunks.
//
// Subpackages:
//
//	internal/aead    - AES-256-GCM seal/open primitive
//	internal/kdf     - PBKDF2-HMAC-SHA256 password-to-key derivation
//	internal/wrap    - File Encryption Key wrapping under a Master Key
//	container        - wire format: main header, wrapped-FEK envelope, chunk records
//	streamcrypt      - chunk-by-chunk streaming encryption/decryption state machines
//	copyorc          - cloud-to-cloud copy orchestrator driving caller I/O callbacks
//	ffi              - opaque handle table for a C ABI boundary
//	scan             - recursive folder-to-JSON report
//	cvcodes          - stable error code taxonomy shared across the module
//	config           - central tunables and sanity bounds
//
// The project is licensed under the Apache License, Version 2.0. The license
// can be found in the LICENSE file in the root of the project.
package cloudvault
