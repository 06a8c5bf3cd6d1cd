// Package status samples filesystem usage so a run can report how much
// free space it actually reclaimed.
package status

import (
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/disk"
)

// DiskUsage is a snapshot of the filesystem holding Path.
type DiskUsage struct {
	Path        string
	Total       uint64
	Free        uint64
	Used        uint64
	UsedPercent float64
}

// UsageFunc samples disk usage for a path.
type UsageFunc func(path string) (DiskUsage, error)

// Usage samples the filesystem containing path.
func Usage(path string) (DiskUsage, error) {
	u, err := disk.Usage(path)
	if err != nil {
		return DiskUsage{}, errors.Wrapf(err, "disk usage for %s", path)
	}
	return DiskUsage{
		Path:        u.Path,
		Total:       u.Total,
		Free:        u.Free,
		Used:        u.Used,
		UsedPercent: u.UsedPercent,
	}, nil
}

// Reclaimed returns how much free space grew between two snapshots, or zero
// if it shrank (other processes may write concurrently).
func Reclaimed(before, after DiskUsage) uint64 {
	if after.Free <= before.Free {
		return 0
	}
	return after.Free - before.Free
}
