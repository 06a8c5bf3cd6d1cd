package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// FormatSize renders a byte count using binary units, e.g. "1.5 KiB".
func FormatSize(bytes uint64) string {
	return humanize.IBytes(bytes)
}

// FormatDuration renders an elapsed time with a precision that suits
// interactive output: milliseconds below one second, otherwise seconds.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// Plural returns "1 item" / "3 items".
func Plural(n uint64, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// ParseSize reads sizes like "512", "100MB" or "1.5 GiB". SI suffixes
// (KB, MB) are decimal and IEC suffixes (KiB, MiB) binary.
func ParseSize(s string) (uint64, error) {
	n, err := humanize.ParseBytes(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid size %q", s)
	}
	return n, nil
}
