// Package config assembles the immutable cleanup configuration from built-in
// defaults, project files, and caller overrides.
package config

import "slices"

// Config is the settings for one cleanup run. It is never mutated after
// assembly: every With* method returns a modified copy and every accessor
// returns a copy of the underlying slice.
type Config struct {
	dirPatterns       []string
	filePatterns      []string
	scanDepth         int
	skipNames         []string
	workspacePatterns []string

	verbose     bool
	dryRun      bool
	interactive bool
	autoInstall bool
}

// DirPatterns returns the glob patterns of directories to remove.
func (c Config) DirPatterns() []string { return slices.Clone(c.dirPatterns) }

// FilePatterns returns the glob patterns of files to remove.
func (c Config) FilePatterns() []string { return slices.Clone(c.filePatterns) }

// ScanDepth is the maximum recursion depth used when no workspaces are declared.
func (c Config) ScanDepth() int { return c.scanDepth }

// SkipNames returns the directory basenames that are never descended into.
func (c Config) SkipNames() []string { return slices.Clone(c.skipNames) }

// WorkspacePatterns returns the deduplicated workspace glob patterns.
func (c Config) WorkspacePatterns() []string { return slices.Clone(c.workspacePatterns) }

// HasWorkspaces reports whether any workspace pattern is configured.
func (c Config) HasWorkspaces() bool { return len(c.workspacePatterns) > 0 }

// IsSkipped reports whether a directory basename is in the skip set.
func (c Config) IsSkipped(name string) bool { return slices.Contains(c.skipNames, name) }

func (c Config) Verbose() bool     { return c.verbose }
func (c Config) DryRun() bool      { return c.dryRun }
func (c Config) Interactive() bool { return c.interactive }
func (c Config) AutoInstall() bool { return c.autoInstall }

// ─── Builder ─────────────────────────────────────────────────────────────────

// WithDirPatterns returns a copy with the directory patterns replaced.
func (c Config) WithDirPatterns(p []string) Config {
	c.dirPatterns = slices.Clone(p)
	return c
}

// WithFilePatterns returns a copy with the file patterns replaced.
func (c Config) WithFilePatterns(p []string) Config {
	c.filePatterns = slices.Clone(p)
	return c
}

// WithSkipNames returns a copy with the skip set replaced. Duplicates are dropped.
func (c Config) WithSkipNames(names []string) Config {
	c.skipNames = dedupe(names)
	return c
}

// WithScanDepth returns a copy with the scan depth set. Depths below one are
// clamped to one (root only).
func (c Config) WithScanDepth(depth int) Config {
	c.scanDepth = max(depth, 1)
	return c
}

// WithWorkspacePatterns returns a copy with patterns appended to the
// workspace set, keeping set semantics.
func (c Config) WithWorkspacePatterns(p ...string) Config {
	c.workspacePatterns = dedupe(append(slices.Clone(c.workspacePatterns), p...))
	return c
}

func (c Config) WithVerbose(v bool) Config {
	c.verbose = v
	return c
}

func (c Config) WithDryRun(v bool) Config {
	c.dryRun = v
	return c
}

func (c Config) WithInteractive(v bool) Config {
	c.interactive = v
	return c
}

func (c Config) WithAutoInstall(v bool) Config {
	c.autoInstall = v
	return c
}

// dedupe drops repeated and empty entries, keeping first-seen order.
func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
