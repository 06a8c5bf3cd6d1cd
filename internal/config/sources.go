package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// settings is the subset of cleanup settings a project file can provide.
// A nil slice means the key was absent (or not an array) and must not
// overwrite the previous value.
type settings struct {
	DirPatterns  []string
	FilePatterns []string
	SkipNames    []string
	ScanDepth    *int
}

// apply overlays s onto c using "present array wins".
func (s settings) apply(c Config) Config {
	if s.DirPatterns != nil {
		c = c.WithDirPatterns(s.DirPatterns)
	}
	if s.FilePatterns != nil {
		c = c.WithFilePatterns(s.FilePatterns)
	}
	if s.SkipNames != nil {
		c = c.WithSkipNames(s.SkipNames)
	}
	if s.ScanDepth != nil && *s.ScanDepth >= 1 {
		c = c.WithScanDepth(*s.ScanDepth)
	}
	return c
}

// manifest is what we read from package.json.
type manifest struct {
	Settings   *settings
	Workspaces []string
}

// readFile returns the file contents, or (nil, nil) when it does not exist.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filepath.Base(path))
	}
	return data, nil
}

// loadManifest parses package.json in dir. A missing file yields (nil, nil).
func loadManifest(dir string) (*manifest, error) {
	data, err := readFile(filepath.Join(dir, ManifestFile))
	if data == nil || err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parse %s", ManifestFile)
	}

	m := &manifest{}
	if section, ok := raw[ManifestSection]; ok && !isNull(section) {
		s, err := parseSettings(section)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s.%s", ManifestFile, ManifestSection)
		}
		m.Settings = &s
	}
	if ws, ok := raw["workspaces"]; ok {
		m.Workspaces = parseWorkspaces(ws)
	}
	return m, nil
}

// loadRC parses .cleaninstallnoderc in dir. A missing file yields (nil, nil).
func loadRC(dir string) (*settings, error) {
	data, err := readFile(filepath.Join(dir, RCFile))
	if data == nil || err != nil {
		return nil, err
	}
	s, err := parseSettings(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", RCFile)
	}
	return &s, nil
}

// pnpmWorkspace mirrors pnpm-workspace.yaml.
type pnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// loadPnpmWorkspace returns the packages listed in pnpm-workspace.yaml.
func loadPnpmWorkspace(dir string) ([]string, error) {
	data, err := readFile(filepath.Join(dir, PnpmWorkspaceFile))
	if data == nil || err != nil {
		return nil, err
	}
	var ws pnpmWorkspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, errors.Wrapf(err, "parse %s", PnpmWorkspaceFile)
	}
	return ws.Packages, nil
}

// parseSettings decodes a JSON object of cleanup settings. Keys whose values
// are not string arrays are ignored rather than treated as empty.
func parseSettings(data []byte) (settings, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return settings{}, err
	}

	var s settings
	s.DirPatterns = stringArray(raw["dirsToRemove"])
	s.FilePatterns = stringArray(raw["filesToRemove"])
	s.SkipNames = stringArray(raw["skipDirs"])

	if v, ok := raw["scanDepth"]; ok {
		var depth int
		if err := json.Unmarshal(v, &depth); err == nil {
			s.ScanDepth = &depth
		}
	}
	return s, nil
}

// parseWorkspaces accepts either ["a/*"] or {"packages": ["a/*"]}.
func parseWorkspaces(data json.RawMessage) []string {
	if list := stringArray(data); list != nil {
		return list
	}
	var nested struct {
		Packages json.RawMessage `json:"packages"`
	}
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil
	}
	return stringArray(nested.Packages)
}

// stringArray decodes data as a string array. It returns nil when data is
// absent, null, or not an array of strings; an explicit [] yields an empty
// non-nil slice.
func stringArray(data json.RawMessage) []string {
	if len(data) == 0 || isNull(data) {
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func isNull(data json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
