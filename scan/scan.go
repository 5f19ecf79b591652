// Package scan implements the recursive folder-to-JSON report documented
// as cloudvault's peripheral "folder scan" surface: a thin adapter over a
// filesystem abstraction, not a cryptographic component.
//
// Grounded on the teacher's vfs package: Walk accepts any vfs.FileSystem,
// so it runs unmodified against the real OS filesystem (vfs.OS()) without
// a single line of scan-specific filesystem code.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/cloudnexus/cloudvault/vfs"
)

// Item describes one file or directory entry discovered during a scan.
type Item struct {
	RelativePath string `json:"relative_path"`
	Name         string `json:"name"`
	IsFolder     bool   `json:"is_folder"`
	Size         int64  `json:"size"`
	AbsolutePath string `json:"absolute_path"`
}

// Report is the JSON-shaped result of scanning a folder tree.
type Report struct {
	RootPath       string  `json:"root_path"`
	Items          []Item  `json:"items"`
	TotalFiles     int     `json:"total_files"`
	TotalFolders   int     `json:"total_folders"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	ScanDurationMS float64 `json:"scan_duration_ms"`
}

// clock abstracts time.Now so tests can control duration measurement
// without depending on wall-clock timing.
var clock = func() time.Time { return time.Now() }

// Walk recursively lists root on fsys, producing a Report whose items are
// ordered by the underlying filesystem's WalkDir traversal (lexical,
// depth-first). root itself is not included as an item.
func Walk(fsys vfs.FileSystem, root string) (*Report, error) {
	start := clock()

	report := &Report{RootPath: root}

	err := fsys.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("unable to walk %q: %w", path, err)
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("unable to compute relative path for %q: %w", path, err)
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("unable to stat %q: %w", path, err)
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("unable to compute absolute path for %q: %w", path, err)
		}

		item := Item{
			RelativePath: rel,
			Name:         d.Name(),
			IsFolder:     d.IsDir(),
			Size:         info.Size(),
			AbsolutePath: abs,
		}
		report.Items = append(report.Items, item)

		if item.IsFolder {
			report.TotalFolders++
		} else {
			report.TotalFiles++
			report.TotalSizeBytes += item.Size
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.ScanDurationMS = float64(clock().Sub(start).Microseconds()) / 1000.0
	return report, nil
}
