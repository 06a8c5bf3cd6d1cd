package ui

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.in); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.50s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := Plural(1, "item"); got != "1 item" {
		t.Errorf("Plural(1) = %q", got)
	}
	if got := Plural(3, "item"); got != "3 items" {
		t.Errorf("Plural(3) = %q", got)
	}
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(Summary{Items: 3, Files: 42, Bytes: 2048, Roots: 2, Elapsed: time.Second})
	for _, want := range []string{"Cleanup complete", "Items deleted", "42", "2.0 KiB", "Workspaces"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	disk := RenderSummary(Summary{Items: 1, DiskFree: true, DiskFreeBefore: 1 << 20, DiskFreeAfter: 3 << 20, DiskReclaimed: 2 << 20})
	if !strings.Contains(disk, "Disk reclaimed") || !strings.Contains(disk, "2.0 MiB") {
		t.Errorf("disk rows missing:\n%s", disk)
	}

	dry := RenderSummary(Summary{Items: 1, DryRun: true, DiskFree: true})
	if !strings.Contains(dry, "Dry run") || !strings.Contains(dry, "Would free") || strings.Contains(dry, "Disk free") {
		t.Errorf("dry-run summary:\n%s", dry)
	}
}

func TestRenderRoots(t *testing.T) {
	out := RenderRoots("/m", []string{"/m", "/m/packages/a", "/m/packages/b"})
	if !strings.Contains(out, "+-- packages/a") || !strings.Contains(out, "\\-- packages/b") {
		t.Errorf("RenderRoots() =\n%s", out)
	}
	if out := RenderRoots("/m", []string{"/m"}); !strings.Contains(out, "no workspace members") {
		t.Errorf("RenderRoots(root only) =\n%s", out)
	}
}

func TestRenderError(t *testing.T) {
	if out := RenderError(errors.New("boom")); !strings.Contains(out, "boom") {
		t.Errorf("RenderError() = %q", out)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{in: "512", want: 512},
		{in: "10KB", want: 10 * 1000},
		{in: "10KiB", want: 10 * 1024},
		{in: "100mb", want: 100 * 1000 * 1000},
		{in: "1.5 GB", want: 1500 * 1000 * 1000},
		{in: " 2GiB ", want: 2 * 1024 * 1024 * 1024},
		{in: "", wantErr: true},
		{in: "MB", wantErr: true},
		{in: "10XB", wantErr: true},
		{in: "1.2.3MB", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
