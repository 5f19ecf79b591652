// SPDX-FileCopyrightText: 2024-Present Datadog, Inc
// SPDX-License-Identifier: Apache-2.0

//go:build darwin

package vfs

import (
	"os"
	"strings"
	"syscall"
)

// invalidPathChars adds ':' over the generic unix set: HFS+/APFS historically
// maps it to the path separator internally.
var invalidPathChars = []rune{'\x00', '/', ':'}

func isInvalidFilename(name string) bool {
	return strings.ContainsAny(name, string(invalidPathChars))
}

// createNewFile refuses to follow an existing symlink at name, so a scan or
// copy destination an attacker pre-planted a symlink at can't redirect a
// write outside the intended output path.
func createNewFile(name string) (*os.File, error) {
	return os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL|os.O_TRUNC|syscall.O_NOFOLLOW, 0o666)
}
