// Package pattern resolves slash-separated glob patterns against a base
// directory. Each path segment is matched on its own, so "*" never crosses
// a separator; "**" spans any number of segments.
package pattern

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/IGLOU-EU/go-wildcard"
	"github.com/pkg/errors"
)

// ErrAbsolutePattern is returned for patterns that are not relative to the base.
var ErrAbsolutePattern = errors.New("pattern must be relative")

// Kind restricts which entries a pattern may match.
type Kind int

const (
	Any Kind = iota
	Dirs
	Files
)

// Options tune a single resolution.
type Options struct {
	// Kind limits matches to directories or non-directories.
	Kind Kind

	// Exclude lists directory basenames that are never entered or matched.
	Exclude []string

	// Hidden allows segments to match entries starting with a dot even when
	// the pattern segment itself does not start with one.
	Hidden bool

	// Descend keeps walking below matched directories, so "pkgs/**" yields
	// pkgs and every directory under it. Removal targets leave it unset.
	Descend bool
}

// Resolver turns a glob pattern into the matching paths below base.
type Resolver interface {
	Resolve(base, pattern string, opts Options) ([]string, error)
}

// Glob is the filesystem-backed Resolver.
type Glob struct{}

// Resolve returns the absolute, lexically sorted paths below base matching
// pattern. Matched directories are not descended into unless
// opts.Descend is set.
func (Glob) Resolve(base, pattern string, opts Options) ([]string, error) {
	segs, err := split(pattern)
	if err != nil {
		return nil, err
	}

	base, err = filepath.Abs(base)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve base %s", base)
	}
	info, err := os.Stat(base)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %q", pattern)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("resolve %q: %s is not a directory", pattern, base)
	}

	var matches []string
	walkErr := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == base {
				return err
			}
			// Unreadable subtree: nothing below it can match.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == base {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		name := d.Name()

		if d.IsDir() && slices.Contains(opts.Exclude, name) {
			return fs.SkipDir
		}

		if matchSegments(segs, parts, opts.Hidden) && kindMatches(d, path, opts.Kind) {
			matches = append(matches, path)
			if !d.IsDir() {
				return nil
			}
			if !opts.Descend {
				return fs.SkipDir
			}
		}

		if d.IsDir() && !matchPrefix(segs, parts, opts.Hidden) {
			return fs.SkipDir
		}
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrapf(walkErr, "resolve %q in %s", pattern, base)
	}

	slices.Sort(matches)
	return matches, nil
}

// split validates a pattern and breaks it into segments.
func split(pattern string) ([]string, error) {
	pattern = filepath.ToSlash(strings.TrimSpace(pattern))
	if pattern == "" {
		return nil, errors.New("empty pattern")
	}
	if strings.HasPrefix(pattern, "/") || filepath.IsAbs(pattern) {
		return nil, errors.Wrapf(ErrAbsolutePattern, "%q", pattern)
	}
	pattern = strings.TrimPrefix(pattern, "./")

	var segs []string
	for _, s := range strings.Split(pattern, "/") {
		if s == "" || s == "." {
			continue
		}
		if s == ".." {
			return nil, errors.Errorf("pattern %q escapes its base directory", pattern)
		}
		// Collapse runs of "**".
		if s == "**" && len(segs) > 0 && segs[len(segs)-1] == "**" {
			continue
		}
		segs = append(segs, s)
	}
	if len(segs) == 0 {
		return nil, errors.Errorf("pattern %q matches its base directory only", pattern)
	}
	return segs, nil
}

// matchSegments reports whether every path part is consumed by the pattern.
func matchSegments(segs, parts []string, hidden bool) bool {
	if len(segs) == 0 {
		return len(parts) == 0
	}
	if segs[0] == "**" {
		if matchSegments(segs[1:], parts, hidden) {
			return true
		}
		return len(parts) > 0 && visible(parts[0], "*", hidden) && matchSegments(segs, parts[1:], hidden)
	}
	if len(parts) == 0 {
		return false
	}
	return matchOne(segs[0], parts[0], hidden) && matchSegments(segs[1:], parts[1:], hidden)
}

// matchPrefix reports whether some extension of parts could still match,
// i.e. whether the walk should descend into the directory.
func matchPrefix(segs, parts []string, hidden bool) bool {
	if len(parts) == 0 {
		return true
	}
	if len(segs) == 0 {
		return false
	}
	if segs[0] == "**" {
		return true
	}
	return matchOne(segs[0], parts[0], hidden) && matchPrefix(segs[1:], parts[1:], hidden)
}

// matchOne matches a single pattern segment against a single name.
func matchOne(seg, name string, hidden bool) bool {
	if !strings.ContainsAny(seg, "*?") {
		return seg == name
	}
	return visible(name, seg, hidden) && wildcard.Match(seg, name)
}

// visible applies dotfile rules: a wildcard does not match a leading dot
// unless hidden entries are requested or the segment starts with one.
func visible(name, seg string, hidden bool) bool {
	return hidden || !strings.HasPrefix(name, ".") || strings.HasPrefix(seg, ".")
}

func kindMatches(d fs.DirEntry, path string, kind Kind) bool {
	switch kind {
	case Dirs:
		return isDir(d, path)
	case Files:
		return !isDir(d, path)
	default:
		return true
	}
}

// isDir treats symlinks to directories as directories without following
// them during the walk.
func isDir(d fs.DirEntry, path string) bool {
	if d.IsDir() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsNegated reports whether a workspace pattern excludes matches ("!pat").
func IsNegated(p string) (string, bool) {
	if rest, ok := strings.CutPrefix(p, "!"); ok {
		return rest, true
	}
	return p, false
}
