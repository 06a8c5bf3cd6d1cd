package analyze

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lakshaymaurya-felt/cleaninstall/internal/clean"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/config"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/pattern"
)

// Planned lists the entries a cleanup would remove under one root, in
// cleaning order.
type Planned struct {
	Root  string
	Paths []string
}

// Plan runs the cleaner in dry-run mode over rootDir and every workspace
// root, skipping measurement. As with a real run only rootDir being
// unusable is an error.
func Plan(rootDir string, cfg config.Config, r pattern.Resolver, log logrus.FieldLogger) ([]Planned, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", rootDir)
	}
	cfg = cfg.WithDryRun(true).WithInteractive(false)

	c := &clean.Cleaner{
		Config:   cfg,
		Resolver: r,
		Remover: &clean.Remover{
			DryRun:  true,
			WorkDir: root,
			Log:     log,
			Measure: skipMeasure,
		},
		Log: log,
	}

	roots := []string{root}
	if cfg.HasWorkspaces() {
		roots = clean.Locate(root, cfg, r, log)
	}

	plans := make([]Planned, 0, len(roots))
	var planned clean.Result
	for i, dir := range roots {
		if planned.Covers(dir) {
			log.Debugf("Skipping workspace %s: inside a removed directory", dir)
			continue
		}
		res, err := c.CleanRoot(dir)
		if err != nil {
			if i == 0 {
				return nil, err
			}
			log.WithError(err).Warnf("Skipping workspace %s", dir)
			continue
		}
		planned = planned.Add(res)
		plans = append(plans, Planned{Root: dir, Paths: res.Paths})
	}
	return plans, nil
}

// Analyze plans a cleanup of rootDir and sizes every target.
func (s *Scanner) Analyze(rootDir string, cfg config.Config, r pattern.Resolver, log logrus.FieldLogger) (Report, error) {
	plans, err := Plan(rootDir, cfg, r, log)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Root: plans[0].Root}
	for _, p := range plans {
		g := Group{Root: p.Root, Targets: s.Size(p.Paths)}
		for _, t := range g.Targets {
			g.Size += t.Size
			rep.Files += t.Files
		}
		rep.Size += g.Size
		rep.Groups = append(rep.Groups, g)
	}
	rep.Warnings = s.Warnings()
	return rep, nil
}

func skipMeasure(string) (uint64, uint64, error) { return 0, 0, nil }
