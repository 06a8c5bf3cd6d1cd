package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func quietLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

func ptr[T any](v T) *T { return &v }

func TestAssembleDefaults(t *testing.T) {
	log, hook := quietLogger()
	cfg := Assemble(t.TempDir(), Overrides{}, log)

	if got, want := cfg.DirPatterns(), []string{"node_modules", ".next", ".turbo", "dist", "build"}; !reflect.DeepEqual(got, want) {
		t.Errorf("DirPatterns() = %v, want %v", got, want)
	}
	if got, want := cfg.FilePatterns(), []string{"pnpm-lock.yaml", "yarn.lock", "package-lock.json"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FilePatterns() = %v, want %v", got, want)
	}
	if cfg.ScanDepth() != 2 {
		t.Errorf("ScanDepth() = %d, want 2", cfg.ScanDepth())
	}
	if got := cfg.SkipNames(); !reflect.DeepEqual(got, []string{".git"}) {
		t.Errorf("SkipNames() = %v, want [.git]", got)
	}
	if cfg.HasWorkspaces() || cfg.DryRun() || cfg.Interactive() || cfg.AutoInstall() {
		t.Errorf("unexpected flags set: %+v", cfg)
	}
	if !cfg.Verbose() {
		t.Error("Verbose() = false, want true")
	}
	if len(hook.AllEntries()) != 0 {
		t.Errorf("unexpected log entries: %d", len(hook.AllEntries()))
	}
}

func TestAssembleManifestSection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, `{
		"name": "demo",
		"cleaninstallNode": {"dirsToRemove": ["custom-dir"], "scanDepth": 3}
	}`)

	log, _ := quietLogger()
	cfg := Assemble(dir, Overrides{}, log)

	if got := cfg.DirPatterns(); !reflect.DeepEqual(got, []string{"custom-dir"}) {
		t.Errorf("DirPatterns() = %v, want [custom-dir]", got)
	}
	// Absent arrays keep the defaults.
	if got := cfg.FilePatterns(); len(got) != 3 {
		t.Errorf("FilePatterns() = %v, want defaults", got)
	}
	if cfg.ScanDepth() != 3 {
		t.Errorf("ScanDepth() = %d, want 3", cfg.ScanDepth())
	}
}

func TestAssembleRCWinsOverManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, `{"cleaninstallNode": {"dirsToRemove": ["from-manifest"], "filesToRemove": ["m.txt"]}}`)
	writeFile(t, dir, RCFile, `{"dirsToRemove": ["rc-dir"], "skipDirs": "not-an-array"}`)

	log, _ := quietLogger()
	cfg := Assemble(dir, Overrides{}, log)

	if got := cfg.DirPatterns(); !reflect.DeepEqual(got, []string{"rc-dir"}) {
		t.Errorf("DirPatterns() = %v, want [rc-dir]", got)
	}
	if got := cfg.FilePatterns(); !reflect.DeepEqual(got, []string{"m.txt"}) {
		t.Errorf("FilePatterns() = %v, want [m.txt]", got)
	}
	if got := cfg.SkipNames(); !reflect.DeepEqual(got, []string{".git"}) {
		t.Errorf("SkipNames() = %v, want [.git]", got)
	}
}

func TestAssembleExplicitEmptyArray(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, RCFile, `{"filesToRemove": []}`)

	log, _ := quietLogger()
	cfg := Assemble(dir, Overrides{}, log)
	if got := cfg.FilePatterns(); len(got) != 0 {
		t.Errorf("FilePatterns() = %v, want empty", got)
	}
}

func TestAssembleWorkspaces(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		pnpm     string
		want     []string
	}{
		{
			name:     "array",
			manifest: `{"workspaces": ["packages/*", "apps/*"]}`,
			want:     []string{"packages/*", "apps/*"},
		},
		{
			name:     "nested packages",
			manifest: `{"workspaces": {"packages": ["libs/*"], "nohoist": ["**/x"]}}`,
			want:     []string{"libs/*"},
		},
		{
			name: "pnpm file",
			pnpm: "packages:\n  - 'packages/*'\n  - tools/cli\n",
			want: []string{"packages/*", "tools/cli"},
		},
		{
			name:     "deduplicated union",
			manifest: `{"workspaces": ["packages/*"]}`,
			pnpm:     "packages:\n  - packages/*\n  - apps/*\n",
			want:     []string{"packages/*", "apps/*"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.manifest != "" {
				writeFile(t, dir, ManifestFile, tt.manifest)
			}
			if tt.pnpm != "" {
				writeFile(t, dir, PnpmWorkspaceFile, tt.pnpm)
			}
			log, _ := quietLogger()
			cfg := Assemble(dir, Overrides{}, log)
			if got := cfg.WorkspacePatterns(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WorkspacePatterns() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssembleMalformedSourcesWarn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, `{not json`)
	writeFile(t, dir, RCFile, `[1, 2`)
	writeFile(t, dir, PnpmWorkspaceFile, "packages: [unterminated\n")

	log, hook := quietLogger()
	cfg := Assemble(dir, Overrides{}, log)

	if got := cfg.DirPatterns(); !reflect.DeepEqual(got, Default().DirPatterns()) {
		t.Errorf("DirPatterns() = %v, want defaults", got)
	}
	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	if warnings != 3 {
		t.Errorf("got %d warnings, want 3", warnings)
	}
}

func TestAssembleOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, RCFile, `{"dirsToRemove": ["rc-dir"], "skipDirs": ["vendor"]}`)

	log, _ := quietLogger()
	cfg := Assemble(dir, Overrides{
		Verbose:      ptr(false),
		DryRun:       ptr(true),
		Interactive:  ptr(true),
		AutoInstall:  ptr(true),
		ScanDepth:    ptr(0),
		FilePatterns: []string{"*.log"},
	}, log)

	if got := cfg.DirPatterns(); !reflect.DeepEqual(got, []string{"rc-dir"}) {
		t.Errorf("DirPatterns() = %v, want [rc-dir]", got)
	}
	if got := cfg.FilePatterns(); !reflect.DeepEqual(got, []string{"*.log"}) {
		t.Errorf("FilePatterns() = %v, want [*.log]", got)
	}
	if got := cfg.SkipNames(); !reflect.DeepEqual(got, []string{"vendor", ".git"}) {
		t.Errorf("SkipNames() = %v, want [vendor .git]", got)
	}
	if cfg.Verbose() || !cfg.DryRun() || !cfg.Interactive() || !cfg.AutoInstall() {
		t.Errorf("boolean overrides not applied")
	}
	if cfg.ScanDepth() != 1 {
		t.Errorf("ScanDepth() = %d, want clamped 1", cfg.ScanDepth())
	}
}

func TestAssembleSkipVCSDisabled(t *testing.T) {
	log, _ := quietLogger()
	cfg := Assemble(t.TempDir(), Overrides{SkipNames: []string{"tmp"}, SkipVCS: ptr(false)}, log)
	if got := cfg.SkipNames(); !reflect.DeepEqual(got, []string{"tmp"}) {
		t.Errorf("SkipNames() = %v, want [tmp]", got)
	}
}

func TestConfigIsImmutable(t *testing.T) {
	cfg := Default()
	dirs := cfg.DirPatterns()
	dirs[0] = "mutated"
	if cfg.DirPatterns()[0] != "node_modules" {
		t.Error("accessor exposed internal slice")
	}

	derived := cfg.WithWorkspacePatterns("a/*")
	if cfg.HasWorkspaces() {
		t.Error("WithWorkspacePatterns modified the receiver")
	}
	if !derived.HasWorkspaces() {
		t.Error("derived config lost workspace pattern")
	}
	if Default().HasWorkspaces() {
		t.Error("defaults leaked between calls")
	}
}
