package clean

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lakshaymaurya-felt/cleaninstall/internal/config"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/pattern"
)

var (
	ErrRootNotFound     = errors.New("root directory not found")
	ErrRootNotDir       = errors.New("root path is not a directory")
	ErrRefusingToDelete = errors.New("refusing to delete directory being cleaned")
)

// Cleaner applies the configured removal patterns to a directory and, when
// no workspaces are declared, to nested packages below it.
type Cleaner struct {
	Config   config.Config
	Resolver pattern.Resolver
	Remover  *Remover
	Log      logrus.FieldLogger

	// ReadDir lists a directory. Defaults to os.ReadDir.
	ReadDir func(dir string) ([]fs.DirEntry, error)
}

// CleanRoot validates dir and cleans it at depth one. Only an unusable root
// produces an error; everything below it is best-effort.
func (c *Cleaner) CleanRoot(dir string) (Result, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Result{}, errors.Wrapf(err, "resolve %s", dir)
	}
	info, err := os.Stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		return Result{}, errors.Wrapf(ErrRootNotFound, "%s", abs)
	}
	if err != nil {
		return Result{}, errors.Wrapf(err, "stat %s", abs)
	}
	if !info.IsDir() {
		return Result{}, errors.Wrapf(ErrRootNotDir, "%s", abs)
	}
	if _, err := c.readDir(abs); err != nil {
		return Result{}, errors.Wrapf(err, "list %s", abs)
	}
	return c.Clean(abs, 1), nil
}

// Clean removes directory matches, then file matches, then recurses into
// nested packages while depth allows.
func (c *Cleaner) Clean(dir string, depth int) Result {
	c.Log.Infof("Scanning directory: %s", dir)
	skip := c.Config.SkipNames()

	var res Result
	for _, p := range c.Config.DirPatterns() {
		res = c.removeMatches(res, dir, p, pattern.Options{Kind: pattern.Dirs, Exclude: skip, Hidden: true})
	}
	for _, p := range c.Config.FilePatterns() {
		res = c.removeMatches(res, dir, p, pattern.Options{Kind: pattern.Files, Exclude: skip, Hidden: true})
	}

	// Workspace mode: members are located globally, not by descent.
	if c.Config.HasWorkspaces() || depth >= c.Config.ScanDepth() {
		return res
	}

	entries, err := c.readDir(dir)
	if err != nil {
		c.Log.WithError(err).Errorf("Error scanning %s", dir)
		return res
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		sub := filepath.Join(dir, name)
		if c.Config.IsSkipped(name) {
			c.Log.Debugf("Skipping directory: %s", sub)
			continue
		}
		if res.Covers(sub) {
			continue
		}
		if !hasManifest(sub) {
			continue
		}
		res = res.Add(c.Clean(sub, depth+1))
	}
	return res
}

func (c *Cleaner) removeMatches(res Result, dir, p string, opts pattern.Options) Result {
	matches, err := c.Resolver.Resolve(dir, p, opts)
	if err != nil {
		c.Log.WithError(err).Warnf("Could not resolve pattern %q in %s", p, dir)
		return res
	}
	for _, m := range matches {
		if err := checkTarget(m, dir); err != nil {
			c.Log.WithError(err).Warnf("Skipping %s", m)
			continue
		}
		res = res.Record(m, c.Remover.Remove(m))
	}
	return res
}

func (c *Cleaner) readDir(dir string) ([]fs.DirEntry, error) {
	if c.ReadDir != nil {
		return c.ReadDir(dir)
	}
	return os.ReadDir(dir)
}

// checkTarget refuses a match that is dir itself or one of its ancestors.
func checkTarget(target, dir string) error {
	rel, err := filepath.Rel(target, dir)
	if err != nil {
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return errors.Wrapf(ErrRefusingToDelete, "%s contains %s", target, dir)
	}
	return nil
}

// hasManifest reports whether dir looks like a package of its own.
func hasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, config.ManifestFile))
	return err == nil && info.Mode().IsRegular()
}
