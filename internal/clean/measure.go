package clean

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Measure returns the total size in bytes and the number of non-directory
// entries at path. Symlinks are counted by their own size and never followed.
func Measure(path string) (size, files uint64, err error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, 0, err
	}
	if !info.IsDir() {
		return uint64(max(info.Size(), 0)), 1, nil
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			// Vanished between listing and stat.
			return nil
		}
		size += uint64(max(fi.Size(), 0))
		files++
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return size, files, nil
}
