package clean

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/lakshaymaurya-felt/cleaninstall/internal/config"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/pattern"
)

func TestLocate(t *testing.T) {
	root := canonical(t.TempDir())
	mkTree(t, root,
		"package.json",
		"packages/a/package.json",
		"packages/b/package.json",
		"packages/internal/package.json",
		"packages/notes.md",
		"packages/group/c/package.json",
		"packages/a/node_modules/dep/package.json",
		"apps/web/package.json",
		"apps/.git/",
	)
	if err := os.Symlink(root, filepath.Join(root, "apps", "self")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{"none", nil, []string{"."}},
		{"star", []string{"packages/*"}, []string{".", "packages/a", "packages/b", "packages/internal"}},
		{"overlapping", []string{"packages/b", "packages/*"}, []string{".", "packages/b", "packages/a", "packages/internal"}},
		{"root via symlink and skip names", []string{"apps/*"}, []string{".", "apps/web"}},
		{"negation", []string{"packages/*", "!packages/internal"}, []string{".", "packages/a", "packages/b"}},
		{"globstar keeps descending", []string{"packages/**"}, []string{".", "packages", "packages/a", "packages/b", "packages/group", "packages/group/c", "packages/internal"}},
		{"bad pattern ignored", []string{"/abs", "apps/web"}, []string{".", "apps/web"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, _ := newLogger()
			cfg := config.Default().WithWorkspacePatterns(tt.patterns...)

			got := Locate(root, cfg, pattern.Glob{}, log)

			var rels []string
			for _, g := range got {
				r, err := filepath.Rel(root, g)
				if err != nil {
					t.Fatal(err)
				}
				rels = append(rels, filepath.ToSlash(r))
			}
			if !reflect.DeepEqual(rels, tt.want) {
				t.Errorf("Locate() = %v, want %v", rels, tt.want)
			}
		})
	}
}

func TestLocateResolverFailure(t *testing.T) {
	root := canonical(t.TempDir())
	log, hook := newLogger()
	cfg := config.Default().WithWorkspacePatterns("broken/*", "ok/*")
	r := stubResolver{
		matches: map[string][]string{"ok/*": {filepath.Join(root, "ok", "x"), root}},
		errs:    map[string]error{"broken/*": errors.New("boom")},
	}

	got := Locate(root, cfg, r, log)
	want := []string{root, filepath.Join(root, "ok", "x")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Locate() = %v, want %v", got, want)
	}

	warned := false
	for _, e := range hook.AllEntries() {
		if e.Message == `Could not resolve workspace pattern "broken/*"` {
			warned = true
		}
	}
	if !warned {
		t.Error("resolver failure was not logged")
	}
}
