// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package ioutil

import (
	"errors"
	"io"
	"time"
)

// ErrReaderTimedOut is raised when the reader doesn't received data for a
// predeterminined time.
var ErrReaderTimedOut = errors.New("reader timed out")

// timeoutReader wraps a reader with a per-Read deadline.
//
// cloudvault's copy command wraps each section reader it opens on the
// source file with this, so a stalled read fails the transfer instead of
// hanging the copy loop forever.
type timeoutReader struct {
	reader  io.Reader
	timeout time.Duration
}

// TimeoutReader creates a reader that fails with ErrReaderTimedOut if a
// single Read call on reader takes longer than timeout.
func TimeoutReader(reader io.Reader, timeout time.Duration) io.Reader {
	return &timeoutReader{reader: reader, timeout: timeout}
}

// Read implements io.Reader interface.
func (r *timeoutReader) Read(buf []byte) (int, error) {
	if r.reader == nil {
		return 0, errors.New("reader must not be nil")
	}

	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := r.reader.Read(buf)
		done <- result{n, err}
	}()

	select {
	case res := <-done:
		return res.n, res.err
	case <-time.After(r.timeout):
		return 0, ErrReaderTimedOut
	}
}
