package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cloudnexus/cloudvault/copyorc"
	"github.com/cloudnexus/cloudvault/ioutil"
)

// readTimeout bounds how long a single chunk read may block, mitigating a
// slow or stalled source transport from hanging the whole copy.
const readTimeout = 30 * time.Second

func runCopy(args []string) error {
	fs := flag.NewFlagSet("copy", flag.ExitOnError)
	in := fs.String("in", "", "source file")
	out := fs.String("out", "", "destination file")
	chunkSize := fs.Int("chunk-size", 0, "copy chunk size in bytes (0 = default)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	src, err := os.Open(*in)
	if err != nil {
		return fmt.Errorf("unable to open source file: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("unable to stat source file: %w", err)
	}

	dst, err := os.OpenFile(*out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("unable to open destination file: %w", err)
	}
	defer dst.Close()

	copier, err := copyorc.New(*chunkSize)
	if err != nil {
		return err
	}

	read := func(_ context.Context, buf []byte, offset int64) (int, error) {
		section := io.NewSectionReader(src, offset, int64(len(buf)))
		tr := ioutil.TimeoutReader(section, readTimeout)
		n, err := io.ReadFull(tr, buf)
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return n, nil
		}
		return n, err
	}
	write := func(_ context.Context, data []byte, offset int64) (int, error) {
		return dst.WriteAt(data, offset)
	}

	n, err := copier.CopyFile(context.Background(), read, write, info.Size(), nil, func(copied, total int64) {
		fmt.Fprintf(os.Stderr, "copied %d/%d bytes\n", copied, total)
	})
	if err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}

	fmt.Printf("copied %d bytes from %s to %s\n", n, *in, *out)
	return nil
}
