// Package install detects the project's package manager and runs its
// install command after a cleanup.
package install

import (
	"os"
	"path/filepath"
)

// Manager is a Node.js package manager.
type Manager string

const (
	Pnpm Manager = "pnpm"
	Yarn Manager = "yarn"
	Npm  Manager = "npm"
)

// Command returns the canonical install invocation.
func (m Manager) Command() (name string, args []string) {
	return string(m), []string{"install"}
}

// String renders the full install command, e.g. "pnpm install".
func (m Manager) String() string {
	return string(m) + " install"
}

// lockfileProbe maps one lockfile name to the manager that writes it.
type lockfileProbe struct {
	file    string
	manager Manager
}

// probes are checked in priority order.
var probes = []lockfileProbe{
	{"pnpm-lock.yaml", Pnpm},
	{"yarn.lock", Yarn},
	{"package-lock.json", Npm},
}

// Detect returns the manager whose lockfile is present in dir, falling
// back to npm. Call it before cleaning: lockfiles are removal targets.
func Detect(dir string) Manager {
	for _, p := range probes {
		if info, err := os.Stat(filepath.Join(dir, p.file)); err == nil && !info.IsDir() {
			return p.manager
		}
	}
	return Npm
}
