package analyze

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/lakshaymaurya-felt/cleaninstall/internal/ui"
)

// DefaultLimit caps the entries shown per root.
const DefaultLimit = 20

// TreeOptions filter PrintStaticTree output.
type TreeOptions struct {
	// MinSize hides targets smaller than this many bytes.
	MinSize uint64
	// Limit caps entries per root; 0 shows all.
	Limit int
	// Now decides staleness. Defaults to time.Now.
	Now func() time.Time
}

// PrintStaticTree prints the report as a plain-text tree, one branch per
// cleaning root, largest targets first.
// Uses ASCII connectors (+-- \--) for maximum compatibility with all
// consoles.
func PrintStaticTree(w io.Writer, rep Report, opts TreeOptions) {
	if !hasTargets(rep) {
		fmt.Fprintln(w, ui.RenderNothing(true))
		return
	}
	now := time.Now()
	if opts.Now != nil {
		now = opts.Now()
	}

	fmt.Fprintln(w, ui.TitleStyle.Render(fmt.Sprintf("  Reclaimable in %s", rep.Root)))
	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))

	for _, g := range rep.Groups {
		printGroup(w, rep, g, opts, now)
	}

	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))
	fmt.Fprintf(w, "  Total: %s in %s\n", ui.FormatSize(rep.Size), ui.Plural(rep.Files, "file"))
	for _, warn := range rep.Warnings {
		fmt.Fprintln(w, ui.WarningStyle.Render("  "+ui.IconWarning+" "+warn))
	}
}

func printGroup(w io.Writer, rep Report, g Group, opts TreeOptions, now time.Time) {
	label := g.Root
	if g.Root != rep.Root {
		label = relTo(rep.Root, g.Root)
	}
	fmt.Fprintf(w, "\n  %s  %s (%.0f%%)\n", label, ui.FormatSize(g.Size), g.Percentage(rep.Size))

	var shown []Target
	for _, t := range g.Targets {
		if t.Size >= opts.MinSize {
			shown = append(shown, t)
		}
	}
	if len(shown) == 0 {
		fmt.Fprintln(w, ui.MutedStyle.Render("  \\-- (nothing to remove)"))
		return
	}

	remaining := 0
	if opts.Limit > 0 && len(shown) > opts.Limit {
		remaining = len(shown) - opts.Limit
		shown = shown[:opts.Limit]
	}

	for i, t := range shown {
		connector := "+-- "
		if i == len(shown)-1 && remaining == 0 {
			connector = "\\-- "
		}
		name := relTo(g.Root, t.Path)
		if t.IsDir {
			name += "/"
		}
		line := fmt.Sprintf("  %s%s  %s", connector, name, ui.FormatSize(t.Size))
		if t.IsStale(now) {
			line += ui.MutedStyle.Render("  (stale)")
		}
		fmt.Fprintln(w, line)
	}
	if remaining > 0 {
		fmt.Fprintf(w, "  \\-- ... and %d more entries\n", remaining)
	}
}

func hasTargets(rep Report) bool {
	for _, g := range rep.Groups {
		if len(g.Targets) > 0 {
			return true
		}
	}
	return false
}

func relTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
