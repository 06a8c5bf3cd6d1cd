// Package clean removes build artifacts from a directory tree: it measures
// and deletes individual entries, walks nested packages, and locates
// workspace roots.
package clean

import (
	"path/filepath"
	"slices"
	"strings"
)

// Outcome is the result of attempting to delete one filesystem entry. When
// Deleted is false the size and file count are always zero.
type Outcome struct {
	Deleted bool
	Size    uint64
	Files   uint64
}

// Result accumulates outcomes across a directory tree.
type Result struct {
	BytesFreed   uint64
	FilesRemoved uint64
	ItemsDeleted uint64

	// Paths lists every deleted (or, in dry-run, would-be deleted) entry in
	// the order it was processed.
	Paths []string
}

// Record folds a single outcome into the result.
func (r Result) Record(path string, o Outcome) Result {
	if !o.Deleted {
		return r
	}
	r.BytesFreed += o.Size
	r.FilesRemoved += o.Files
	r.ItemsDeleted++
	r.Paths = append(slices.Clone(r.Paths), path)
	return r
}

// Add merges another result into r.
func (r Result) Add(other Result) Result {
	r.BytesFreed += other.BytesFreed
	r.FilesRemoved += other.FilesRemoved
	r.ItemsDeleted += other.ItemsDeleted
	r.Paths = append(slices.Clone(r.Paths), other.Paths...)
	return r
}

// Covers reports whether path is a removed entry or lies below one.
func (r Result) Covers(path string) bool {
	for _, p := range r.Paths {
		if path == p || strings.HasPrefix(path, p+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
