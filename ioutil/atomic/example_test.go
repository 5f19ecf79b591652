package atomic

import "io"

// ExampleWriteFile mirrors how cloudvault's encrypt command persists a
// finished container: ciphertext is staged next to the destination path and
// only renamed into place once fully written, so a crash mid-write can never
// leave a truncated .cvault file behind.
func ExampleWriteFile() {
	var ciphertext io.Reader

	if err := WriteFile("backup.cvault", ciphertext); err != nil {
		panic(err)
	}
}
