// SPDX-FileCopyrightText: 2024-Present Datadog, Inc
// SPDX-License-Identifier: Apache-2.0

package ioutil

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrTruncatedCopy is raised when the copy is larger than expected.
var ErrTruncatedCopy = errors.New("truncated copy due to too large input")

// LimitCopy uses a buffered CopyN and a hardlimit to stop read from the reader when
// the maxSize amount of data has been written to the given writer and raise an
// error.
//
// cloudvault's single-shot encrypt/decrypt CLI commands call this to bound the
// plaintext and ciphertext they buffer in memory to config.MaxOneShotFileSize
// before the streaming EncryptionContext/DecryptionContext ever runs, so a
// mislabeled multi-gigabyte input can't exhaust memory.
func LimitCopy(dst io.Writer, src io.Reader, maxSize uint64) (uint64, error) {
	if dst == nil {
		return 0, errors.New("writer must not be nil")
	}
	if src == nil {
		return 0, errors.New("reader must not be nil")
	}

	// Copy in page-sized bursts rather than all at once so a malicious or
	// mislabeled source can't force a single giant allocation before the
	// size check below ever runs.
	bufSize := int64(os.Getpagesize())

	var total uint64
	for {
		written, err := io.CopyN(dst, src, bufSize)
		total += uint64(written)
		if total > maxSize {
			return total, ErrTruncatedCopy
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return total, fmt.Errorf("unable to stream source data to destination: %w", err)
		}
	}

	return total, nil
}
