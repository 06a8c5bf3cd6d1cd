package clean

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/lakshaymaurya-felt/cleaninstall/internal/config"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/pattern"
)

// dependencyDir never holds workspace members.
const dependencyDir = "node_modules"

// Locate returns the cleaning roots for rootDir: rootDir itself first, then
// every directory matched by the configured workspace patterns, in pattern
// order. Paths are canonical and each appears once. Patterns prefixed with
// "!" remove their matches from the set (rootDir is always kept). A "**"
// pattern yields every directory below its prefix, as pnpm reads it.
func Locate(rootDir string, cfg config.Config, r pattern.Resolver, log logrus.FieldLogger) []string {
	root := canonical(rootDir)
	opts := pattern.Options{
		Kind:    pattern.Dirs,
		Exclude: append(cfg.SkipNames(), dependencyDir),
		Descend: true,
	}

	seen := map[string]bool{root: true}
	roots := []string{root}
	excluded := map[string]bool{}

	for _, raw := range cfg.WorkspacePatterns() {
		p, negated := pattern.IsNegated(raw)
		matches, err := r.Resolve(root, p, opts)
		if err != nil {
			log.WithError(err).Warnf("Could not resolve workspace pattern %q", raw)
			continue
		}
		log.WithField("matches", len(matches)).Debugf("Workspace pattern %q", raw)

		for _, m := range matches {
			m = canonical(m)
			if negated {
				excluded[m] = true
				continue
			}
			if seen[m] {
				continue
			}
			seen[m] = true
			roots = append(roots, m)
		}
	}

	if len(excluded) == 0 {
		return roots
	}
	kept := make([]string, 0, len(roots))
	for _, d := range roots {
		if d == root || !excluded[d] {
			kept = append(kept, d)
		}
	}
	return kept
}

// canonical resolves p to an absolute path with symlinks evaluated, falling
// back to the cleaned absolute path when evaluation fails.
func canonical(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
