package clean

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/lakshaymaurya-felt/cleaninstall/internal/config"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/pattern"
)

// mkTree creates paths below root. Entries ending in "/" are directories,
// anything else is a file whose content is its own name.
func mkTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if p[len(p)-1] == '/' {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(p), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func exists(root, p string) bool {
	_, err := os.Lstat(filepath.Join(root, filepath.FromSlash(p)))
	return err == nil
}

func assertExists(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if !exists(root, p) {
			t.Errorf("%s was removed, want present", p)
		}
	}
}

func assertGone(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if exists(root, p) {
			t.Errorf("%s still present, want removed", p)
		}
	}
}

func newLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

func newCleaner(cfg config.Config, log logrus.FieldLogger) *Cleaner {
	return &Cleaner{
		Config:   cfg,
		Resolver: pattern.Glob{},
		Remover: &Remover{
			DryRun:      cfg.DryRun(),
			Interactive: cfg.Interactive(),
			Log:         log,
		},
		Log: log,
	}
}

// answers is a Confirmer replaying canned answers, repeating the last one.
type answers struct {
	replies []string
	err     error
	asked   []string
}

func (a *answers) Ask(q string) (string, error) {
	a.asked = append(a.asked, q)
	if a.err != nil {
		return "", a.err
	}
	if len(a.replies) == 0 {
		return "", nil
	}
	r := a.replies[0]
	if len(a.replies) > 1 {
		a.replies = a.replies[1:]
	}
	return r, nil
}
