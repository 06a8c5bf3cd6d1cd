package clean

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Confirmer turns a yes/no question into the user's raw answer.
type Confirmer interface {
	Ask(question string) (string, error)
}

// IsAffirmative reports whether an answer confirms: "y" or "yes" in any case.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// Remover deletes single filesystem entries.
type Remover struct {
	// DryRun measures and reports without touching the filesystem.
	DryRun bool

	// Interactive asks Confirmer before each deletion.
	Interactive bool
	Confirmer   Confirmer

	// WorkDir is the base for paths shown in prompts and logs.
	WorkDir string

	Log logrus.FieldLogger

	// RemoveDir and RemoveFile default to os.RemoveAll and os.Remove.
	RemoveDir  func(path string) error
	RemoveFile func(path string) error

	// Measure sizes an entry before removal. Defaults to the package-level
	// Measure.
	Measure func(path string) (size, files uint64, err error)
}

// Remove deletes path and reports what was freed. A missing path, a denied
// confirmation, and any failure all yield a zero Outcome; failures are
// logged, never returned.
func (r *Remover) Remove(path string) Outcome {
	info, err := os.Lstat(path)
	if errors.Is(err, os.ErrNotExist) {
		return Outcome{}
	}
	if err != nil {
		r.fail(path, err)
		return Outcome{}
	}

	size, files, err := r.measure(path)
	if err != nil {
		r.fail(path, errors.Wrap(err, "measure"))
		return Outcome{}
	}

	display := r.relative(path)
	if r.DryRun {
		r.Log.WithField("size", size).Infof("[dry-run] Would remove: %s", display)
		return Outcome{Deleted: true, Size: size, Files: files}
	}

	if r.Interactive {
		ok, err := r.confirm(display)
		if err != nil {
			r.Log.WithError(err).Warnf("No answer for %s, skipping", display)
			return Outcome{}
		}
		if !ok {
			r.Log.Infof("Skipped: %s", display)
			return Outcome{}
		}
	}

	r.Log.Infof("Removing: %s", display)
	if info.IsDir() {
		err = r.removeDir(path)
	} else {
		err = r.removeFile(path)
	}
	if err != nil {
		r.fail(path, err)
		return Outcome{}
	}
	return Outcome{Deleted: true, Size: size, Files: files}
}

func (r *Remover) confirm(display string) (bool, error) {
	if r.Confirmer == nil {
		return false, errors.New("interactive mode without a confirmer")
	}
	answer, err := r.Confirmer.Ask(fmt.Sprintf("Delete %s? (y/N) ", display))
	if err != nil {
		return false, err
	}
	return IsAffirmative(answer), nil
}

func (r *Remover) fail(path string, err error) {
	r.Log.WithError(err).Errorf("Error processing %s", path)
}

// relative shortens path against WorkDir for display.
func (r *Remover) relative(path string) string {
	if r.WorkDir == "" {
		return path
	}
	rel, err := filepath.Rel(r.WorkDir, path)
	if err != nil {
		return path
	}
	return rel
}

func (r *Remover) measure(path string) (uint64, uint64, error) {
	if r.Measure != nil {
		return r.Measure(path)
	}
	return Measure(path)
}

func (r *Remover) removeDir(path string) error {
	if r.RemoveDir != nil {
		return r.RemoveDir(path)
	}
	return os.RemoveAll(path)
}

func (r *Remover) removeFile(path string) error {
	if r.RemoveFile != nil {
		return r.RemoveFile(path)
	}
	return os.Remove(path)
}
