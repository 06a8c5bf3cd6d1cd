package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Summary is everything the end-of-run report shows.
type Summary struct {
	Items   uint64
	Files   uint64
	Bytes   uint64
	Roots   int
	Elapsed time.Duration
	DryRun  bool

	// DiskFree is set when free space was sampled before and after.
	DiskFree       bool
	DiskFreeBefore uint64
	DiskFreeAfter  uint64
	DiskReclaimed  uint64
}

// RenderSummary renders the boxed end-of-run report.
func RenderSummary(s Summary) string {
	title := IconBroom + " Cleanup complete"
	freedLabel := "Space freed"
	if s.DryRun {
		title = IconBroom + " Dry run complete (nothing was deleted)"
		freedLabel = "Would free"
	}

	rows := []string{
		TitleStyle.Render(title),
		"",
		row("Items deleted", fmt.Sprintf("%d", s.Items)),
		row("Files removed", fmt.Sprintf("%d", s.Files)),
		row(freedLabel, FormatSize(s.Bytes)),
	}
	if s.Roots > 1 {
		rows = append(rows, row("Workspaces", fmt.Sprintf("%d", s.Roots)))
	}
	if s.DiskFree && !s.DryRun {
		rows = append(rows, row("Disk free",
			fmt.Sprintf("%s %s %s", FormatSize(s.DiskFreeBefore), IconArrow, FormatSize(s.DiskFreeAfter))))
		rows = append(rows, row("Disk reclaimed", FormatSize(s.DiskReclaimed)))
	}
	rows = append(rows, row("Elapsed", FormatDuration(s.Elapsed)))

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// RenderNothing is shown when a run deleted nothing.
func RenderNothing(dryRun bool) string {
	if dryRun {
		return MutedStyle.Render("  Nothing would be deleted.")
	}
	return MutedStyle.Render("  Nothing to clean.")
}

// RenderInstallHint reminds the user how to reinstall dependencies.
func RenderInstallHint(command string) string {
	return MutedStyle.Render(fmt.Sprintf("  To reinstall dependencies, run %q.", command))
}

// RenderError renders a fatal run error.
func RenderError(err error) string {
	return ErrorStyle.Render(IconCross+" Cleanup failed: ") + err.Error()
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), ValueStyle.Render(value))
}

// RenderRoots prints the cleaning roots as a tree relative to root.
// Uses ASCII connectors (+-- \--) so output survives any console.
func RenderRoots(root string, roots []string) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(root))
	b.WriteString("\n")

	var members []string
	for _, r := range roots {
		if r == root {
			continue
		}
		rel, err := filepath.Rel(root, r)
		if err != nil {
			rel = r
		}
		members = append(members, filepath.ToSlash(rel))
	}
	if len(members) == 0 {
		b.WriteString(MutedStyle.Render("  (no workspace members)"))
		b.WriteString("\n")
		return b.String()
	}

	for i, m := range members {
		connector := "+-- "
		if i == len(members)-1 {
			connector = "\\-- "
		}
		b.WriteString(MutedStyle.Render(connector))
		b.WriteString(m)
		b.WriteString("\n")
	}
	return b.String()
}
