package config

// File names read from the project root.
const (
	ManifestFile      = "package.json"
	RCFile            = ".cleaninstallnoderc"
	PnpmWorkspaceFile = "pnpm-workspace.yaml"

	// ManifestSection is the package.json key holding cleanup settings.
	ManifestSection = "cleaninstallNode"

	// VCSDir is skipped unless skipping is explicitly disabled.
	VCSDir = ".git"
)

// Target is a named group of removal patterns. The default configuration is
// the concatenation of all DefaultTargets.
type Target struct {
	// Name identifies the group in help output.
	Name string

	// Dirs are directory patterns removed by this group.
	Dirs []string

	// Files are file patterns removed by this group.
	Files []string

	// Description is a human-readable description.
	Description string
}

// DefaultTargets lists the artifacts removed when nothing is configured.
var DefaultTargets = []Target{
	{
		Name:        "dependencies",
		Dirs:        []string{"node_modules"},
		Description: "Installed package trees",
	},
	{
		Name:        "build",
		Dirs:        []string{".next", ".turbo", "dist", "build"},
		Description: "Framework caches and build output",
	},
	{
		Name:        "lockfiles",
		Files:       []string{"pnpm-lock.yaml", "yarn.lock", "package-lock.json"},
		Description: "Package manager lockfiles",
	},
}

// DefaultScanDepth covers the root plus one level of nested packages.
const DefaultScanDepth = 2

// Default returns the built-in configuration. Each call returns a fresh
// value, so runs never observe each other's settings.
func Default() Config {
	var dirs, files []string
	for _, t := range DefaultTargets {
		dirs = append(dirs, t.Dirs...)
		files = append(files, t.Files...)
	}
	return Config{
		dirPatterns:  dirs,
		filePatterns: files,
		scanDepth:    DefaultScanDepth,
		skipNames:    []string{VCSDir},
		verbose:      true,
	}
}
