// Package run sequences one cleanup: configuration, workspace discovery,
// cleaning, reporting and the optional reinstall.
package run

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lakshaymaurya-felt/cleaninstall/internal/clean"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/config"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/install"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/pattern"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/prompt"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/status"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/ui"
)

// Options configure a run. Zero-valued collaborators get production defaults.
type Options struct {
	// Dir is the project root. Defaults to the working directory.
	Dir string

	Overrides config.Overrides

	// Force installs without asking first.
	Force bool

	Resolver      pattern.Resolver
	Installer     install.Installer
	OpenConfirmer func() prompt.Confirmer
	DiskUsage     status.UsageFunc

	Stdout io.Writer
	Log    logrus.FieldLogger
	Now    func() time.Time
}

// Summary describes a finished run.
type Summary struct {
	Root    string
	Config  config.Config
	Roots   []string
	Result  clean.Result
	Manager install.Manager
	Elapsed time.Duration

	// Installed is true when the install command ran and succeeded.
	Installed  bool
	InstallErr error

	DiskBefore *status.DiskUsage
	DiskAfter  *status.DiskUsage
}

func (o *Options) defaults() {
	if o.Resolver == nil {
		o.Resolver = pattern.Glob{}
	}
	if o.Installer == nil {
		o.Installer = install.ExecInstaller{}
	}
	if o.OpenConfirmer == nil {
		o.OpenConfirmer = func() prompt.Confirmer { return prompt.Open(os.Stdin, os.Stdout) }
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Log == nil {
		o.Log = logrus.StandardLogger()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Run performs one cleanup. The returned error is non-nil only when
// cleaning itself failed; an install failure is reported in
// Summary.InstallErr instead.
func Run(ctx context.Context, opts Options) (Summary, error) {
	opts.defaults()
	log := opts.Log
	start := opts.Now()

	root, err := resolveRoot(opts.Dir)
	if err != nil {
		return Summary{}, err
	}
	cfg := config.Assemble(root, opts.Overrides, log)
	sum := Summary{Root: root, Config: cfg, Manager: install.Detect(root)}

	fmt.Fprintln(opts.Stdout, ui.TitleStyle.Render(ui.IconBroom+" Starting cleanup process..."))

	var confirmer prompt.Confirmer
	if cfg.Interactive() || (cfg.AutoInstall() && !opts.Force) {
		confirmer = opts.OpenConfirmer()
		defer confirmer.Close()
	}

	sum.DiskBefore = sample(opts.DiskUsage, root, log)

	cleaner := &clean.Cleaner{
		Config:   cfg,
		Resolver: opts.Resolver,
		Remover: &clean.Remover{
			DryRun:      cfg.DryRun(),
			Interactive: cfg.Interactive(),
			Confirmer:   confirmer,
			WorkDir:     workDir(root),
			Log:         log,
		},
		Log: log,
	}

	sum.Roots, sum.Result, err = cleanAll(cleaner, root, cfg, opts.Resolver, log)
	sum.Elapsed = opts.Now().Sub(start)
	if err != nil {
		log.WithError(err).Error("Cleanup failed")
		fmt.Fprintln(opts.Stdout, ui.RenderError(err))
		return sum, err
	}

	sum.DiskAfter = sample(opts.DiskUsage, root, log)
	report(opts.Stdout, sum)

	if !cfg.AutoInstall() {
		if sum.Result.ItemsDeleted > 0 && !cfg.DryRun() {
			fmt.Fprintln(opts.Stdout, ui.RenderInstallHint(sum.Manager.String()))
		}
		return sum, nil
	}
	if cfg.DryRun() {
		log.Infof("[dry-run] Would run: %s", sum.Manager)
		return sum, nil
	}
	if !opts.Force && !approveInstall(confirmer, sum.Manager, log) {
		log.Infof("Skipped: %s", sum.Manager)
		return sum, nil
	}

	name, args := sum.Manager.Command()
	fmt.Fprintln(opts.Stdout, ui.TitleStyle.Render(fmt.Sprintf("Running %s in %s", sum.Manager, root)))
	if err := opts.Installer.Install(ctx, name, args, root); err != nil {
		sum.InstallErr = err
		log.WithError(err).Errorf("Failed to run %s", sum.Manager)
		return sum, nil
	}
	sum.Installed = true
	fmt.Fprintln(opts.Stdout, ui.SuccessStyle.Render(ui.IconCheck+" Dependencies reinstalled"))
	return sum, nil
}

// cleanAll cleans either every located workspace root or, without
// workspace patterns, the project root with depth-based descent. Only the
// project root being unusable is fatal.
func cleanAll(c *clean.Cleaner, root string, cfg config.Config, r pattern.Resolver, log logrus.FieldLogger) ([]string, clean.Result, error) {
	if !cfg.HasWorkspaces() {
		res, err := c.CleanRoot(root)
		return []string{root}, res, err
	}

	roots := clean.Locate(root, cfg, r, log)
	log.WithField("count", len(roots)).Infof("Found workspace roots")

	var total clean.Result
	for i, dir := range roots {
		if total.Covers(dir) {
			log.Debugf("Skipping workspace %s: inside a removed directory", dir)
			continue
		}
		res, err := c.CleanRoot(dir)
		if err != nil {
			if i == 0 {
				return roots, total, err
			}
			log.WithError(err).Errorf("Error scanning %s", dir)
			continue
		}
		total = total.Add(res)
	}
	return roots, total, nil
}

// approveInstall asks before installing. Only an explicit "n"/"no" declines;
// an empty answer or an unavailable prompt proceeds.
func approveInstall(c prompt.Confirmer, m install.Manager, log logrus.FieldLogger) bool {
	if c == nil {
		return true
	}
	answer, err := c.Ask(fmt.Sprintf("Run %q now? (Y/n) ", m.String()))
	if err != nil {
		log.WithError(err).Debug("No answer for install prompt, proceeding")
		return true
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "n", "no":
		return false
	}
	return true
}

func report(w io.Writer, s Summary) {
	if s.Result.ItemsDeleted == 0 {
		fmt.Fprintln(w, ui.RenderNothing(s.Config.DryRun()))
		return
	}
	view := ui.Summary{
		Items:   s.Result.ItemsDeleted,
		Files:   s.Result.FilesRemoved,
		Bytes:   s.Result.BytesFreed,
		Roots:   len(s.Roots),
		Elapsed: s.Elapsed,
		DryRun:  s.Config.DryRun(),
	}
	if s.DiskBefore != nil && s.DiskAfter != nil {
		view.DiskFree = true
		view.DiskFreeBefore = s.DiskBefore.Free
		view.DiskFreeAfter = s.DiskAfter.Free
		view.DiskReclaimed = status.Reclaimed(*s.DiskBefore, *s.DiskAfter)
	}
	fmt.Fprintln(w, ui.RenderSummary(view))
}

func resolveRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "determine working directory")
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", dir)
	}
	return abs, nil
}

// workDir is the base for displayed relative paths.
func workDir(fallback string) string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return fallback
}

func sample(fn status.UsageFunc, path string, log logrus.FieldLogger) *status.DiskUsage {
	if fn == nil {
		return nil
	}
	u, err := fn(path)
	if err != nil {
		log.WithError(err).Debug("Disk usage unavailable")
		return nil
	}
	return &u
}
