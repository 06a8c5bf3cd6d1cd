package config

import (
	"slices"

	"github.com/sirupsen/logrus"
)

// Overrides are caller-supplied settings applied after every project file.
// Nil fields were not provided and leave the assembled value untouched.
type Overrides struct {
	Verbose     *bool
	DryRun      *bool
	Interactive *bool
	AutoInstall *bool
	ScanDepth   *int

	// Array overrides replace the assembled value entirely when non-nil.
	DirPatterns  []string
	FilePatterns []string
	SkipNames    []string

	// SkipVCS adds VCSDir to the skip set. Nil means true.
	SkipVCS *bool
}

// apply overlays the overrides onto c.
func (o Overrides) apply(c Config) Config {
	if o.Verbose != nil {
		c = c.WithVerbose(*o.Verbose)
	}
	if o.DryRun != nil {
		c = c.WithDryRun(*o.DryRun)
	}
	if o.Interactive != nil {
		c = c.WithInteractive(*o.Interactive)
	}
	if o.AutoInstall != nil {
		c = c.WithAutoInstall(*o.AutoInstall)
	}
	if o.ScanDepth != nil {
		c = c.WithScanDepth(*o.ScanDepth)
	}
	if o.DirPatterns != nil {
		c = c.WithDirPatterns(o.DirPatterns)
	}
	if o.FilePatterns != nil {
		c = c.WithFilePatterns(o.FilePatterns)
	}
	if o.SkipNames != nil {
		c = c.WithSkipNames(o.SkipNames)
	}
	return c
}

func (o Overrides) skipVCS() bool {
	return o.SkipVCS == nil || *o.SkipVCS
}

// Assemble builds the configuration for rootDir. Sources are layered in
// order, later ones winning: defaults, package.json cleanup section,
// package.json workspaces, .cleaninstallnoderc, pnpm-workspace.yaml,
// overrides. A source that fails to parse is reported on log and skipped,
// so Assemble always returns at least the defaults.
func Assemble(rootDir string, o Overrides, log logrus.FieldLogger) Config {
	cfg := Default()

	m, err := loadManifest(rootDir)
	if err != nil {
		log.WithError(err).Warnf("Could not parse %s for config", ManifestFile)
	}
	if m != nil {
		if m.Settings != nil {
			cfg = m.Settings.apply(cfg)
		}
		if len(m.Workspaces) > 0 {
			log.WithField("patterns", m.Workspaces).Debugf("Workspaces declared in %s", ManifestFile)
			cfg = cfg.WithWorkspacePatterns(m.Workspaces...)
		}
	}

	rc, err := loadRC(rootDir)
	if err != nil {
		log.WithError(err).Warnf("Could not parse %s", RCFile)
	}
	if rc != nil {
		cfg = rc.apply(cfg)
	}

	pnpm, err := loadPnpmWorkspace(rootDir)
	if err != nil {
		log.WithError(err).Warnf("Could not parse %s", PnpmWorkspaceFile)
	}
	if len(pnpm) > 0 {
		log.WithField("patterns", pnpm).Debugf("Workspaces declared in %s", PnpmWorkspaceFile)
		cfg = cfg.WithWorkspacePatterns(pnpm...)
	}

	cfg = o.apply(cfg)

	if o.skipVCS() && !cfg.IsSkipped(VCSDir) {
		cfg = cfg.WithSkipNames(append(slices.Clone(cfg.skipNames), VCSDir))
	}
	return cfg
}
