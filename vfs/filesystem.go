package vfs

import (
	"errors"
	"fmt"
)

// ConfirmDir returns an error if the user-specified path is not an existing
// directory on root.
// Otherwise, ConfirmDir returns the absolute, symlink-free form of path
// (which itself can be relative) as a ConfirmedDir. cloudvault's folder-scan CLI uses this to reject a
// scan root that turns out to be a plain file before it ever calls
// scan.Walk.
func ConfirmDir(root FileSystem, path string) (ConfirmedDir, error) {
	// Check argument
	if root == nil {
		return "", errors.New("root filesystem must not be nil")
	}
	if path == "" {
		return "", errors.New("directory path cannot be empty")
	}

	d, f, err := root.Resolve(path)
	if err != nil {
		return "", fmt.Errorf("not a valid directory: %w", err)
	}
	if f != "" {
		return "", fmt.Errorf("file %q is not a directory", f)
	}

	return d, nil
}
