package main

import (
	"flag"
	"fmt"

	"github.com/cloudnexus/cloudvault/scan"
	"github.com/cloudnexus/cloudvault/vfs"
)

func runScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	root := fs.String("root", ".", "directory to scan")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fsys := vfs.OS()
	if _, err := vfs.ConfirmDir(fsys, *root); err != nil {
		return fmt.Errorf("invalid scan root %q: %w", *root, err)
	}

	report, err := scan.Walk(fsys, *root)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	return printJSON(report)
}
