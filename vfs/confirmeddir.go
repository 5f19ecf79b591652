// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package vfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfirmedDir is a clean, absolute, delinkified path that was confirmed to
// point to an existing directory. cloudvault's scan command obtains one
// through ConfirmDir to reject a typo'd or dangling root before it calls
// scan.Walk.
type ConfirmedDir string

// NewTmpConfirmedDir creates a fresh temporary directory and returns it as a
// ConfirmedDir, resolving any symlinks in the process.
func NewTmpConfirmedDir() (ConfirmedDir, error) {
	dir, err := os.MkdirTemp("", "cloudvault-vfs-")
	if err != nil {
		return "", fmt.Errorf("unable to create temporary directory: %w", err)
	}

	// os.MkdirTemp on macOS resolves under /var, itself a symlink to
	// /private/var; de-link it so HasPrefix comparisons against other
	// ConfirmedDir values are exact.
	resolved, err := filepath.EvalSymlinks(dir)
	return ConfirmedDir(resolved), err
}

// HasPrefix reports whether d is path itself or lives under path.
func (d ConfirmedDir) HasPrefix(path ConfirmedDir) bool {
	if path.String() == string(filepath.Separator) || path == d {
		return true
	}
	return strings.HasPrefix(string(d), string(path)+string(filepath.Separator))
}

// Join appends path to the confirmed directory.
func (d ConfirmedDir) Join(path string) string {
	return filepath.Join(string(d), path)
}

func (d ConfirmedDir) String() string {
	return string(d)
}
