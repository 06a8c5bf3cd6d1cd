package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lakshaymaurya-felt/cleaninstall/internal/config"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/logging"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/run"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/status"
)

var (
	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// ErrCleanupFailed is returned by Execute when the cleanup itself failed.
// The failure has already been reported to the user.
var ErrCleanupFailed = errors.New("cleanup failed")

// rootFlags holds every flag of the root command.
type rootFlags struct {
	dir         string
	verbose     bool
	noVerbose   bool
	debug       bool
	logFile     string
	depth       int
	skipGit     bool
	dryRun      bool
	interactive bool
	install     bool
	force       bool
	dirs        []string
	files       []string
	skip        []string
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "cleaninstall",
		Short: "Clean Node.js build artifacts, workspace-aware",
		Long: `cleaninstall - remove node_modules, build output and lockfiles.

Cleans the project root and, in monorepos, every workspace declared in
package.json "workspaces" or pnpm-workspace.yaml. Without workspaces it
descends into nested packages (directories with a package.json) up to
--depth levels. Settings can also live in package.json "cleaninstallNode"
or in a .cleaninstallnoderc file.

Removed by default:
` + defaultsHelp(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.dir, "dir", "d", "", "Root directory to clean (defaults to current directory)")
	flags.BoolVarP(&f.verbose, "verbose", "v", true, "Print verbose output")
	flags.BoolVar(&f.noVerbose, "no-verbose", false, "Disable verbose output")
	flags.BoolVar(&f.debug, "debug", false, "Show detailed operation logs")
	flags.StringVar(&f.logFile, "log-file", "", "Also write JSON logs to this file (rotated)")
	flags.IntVar(&f.depth, "depth", config.DefaultScanDepth, "How deep to scan for nested packages when no workspaces are declared")
	flags.BoolVar(&f.skipGit, "skip-git", true, "Never descend into .git directories")
	flags.BoolVar(&f.dryRun, "dry-run", false, "Preview what would be deleted without deleting")
	flags.BoolVarP(&f.interactive, "interactive", "i", false, "Ask before deleting each item")
	flags.BoolVar(&f.install, "install", false, "Run the package manager's install after cleaning")
	flags.BoolVarP(&f.force, "force", "f", false, "Install without asking first")
	flags.StringSliceVar(&f.dirs, "dirs", nil, "Directory patterns to remove (replaces configured list)")
	flags.StringSliceVar(&f.files, "files", nil, "File patterns to remove (replaces configured list)")
	flags.StringSliceVar(&f.skip, "skip", nil, "Directory names never to descend into (replaces configured list)")

	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newWorkspacesCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCompletionCmd())
	return cmd
}

func runClean(cmd *cobra.Command, f *rootFlags) error {
	log, closer, err := logging.New(logging.Options{
		Verbose: f.verbose && !f.noVerbose,
		Debug:   f.debug,
		File:    f.logFile,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	_, err = run.Run(cmd.Context(), run.Options{
		Dir:       f.dir,
		Overrides: overridesFromFlags(cmd.Flags(), f),
		Force:     f.force,
		DiskUsage: status.Usage,
		Stdout:    cmd.OutOrStdout(),
		Log:       log,
	})
	if err != nil {
		return errors.Wrap(ErrCleanupFailed, err.Error())
	}
	return nil
}

// overridesFromFlags turns explicitly set flags into config overrides;
// flags left at their defaults do not override project files.
func overridesFromFlags(fs *pflag.FlagSet, f *rootFlags) config.Overrides {
	var o config.Overrides
	switch {
	case fs.Changed("no-verbose") && f.noVerbose:
		o.Verbose = boolPtr(false)
	case fs.Changed("verbose"):
		o.Verbose = boolPtr(f.verbose)
	}
	if fs.Changed("dry-run") {
		o.DryRun = boolPtr(f.dryRun)
	}
	if fs.Changed("interactive") {
		o.Interactive = boolPtr(f.interactive)
	}
	if fs.Changed("install") {
		o.AutoInstall = boolPtr(f.install)
	}
	if fs.Changed("depth") {
		depth := f.depth
		o.ScanDepth = &depth
	}
	if fs.Changed("skip-git") {
		o.SkipVCS = boolPtr(f.skipGit)
	}
	if fs.Changed("dirs") {
		o.DirPatterns = nonNil(f.dirs)
	}
	if fs.Changed("files") {
		o.FilePatterns = nonNil(f.files)
	}
	if fs.Changed("skip") {
		o.SkipNames = nonNil(f.skip)
	}
	return o
}

// defaultsHelp lists the built-in removal targets for the long help.
func defaultsHelp() string {
	var b strings.Builder
	for _, t := range config.DefaultTargets {
		patterns := append(append([]string{}, t.Dirs...), t.Files...)
		fmt.Fprintf(&b, "  %-13s %s (%s)\n", t.Name, strings.Join(patterns, ", "), t.Description)
	}
	return b.String()
}

func boolPtr(b bool) *bool { return &b }

// nonNil keeps an explicitly empty list (--files "") distinct from "not set".
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// newLogger builds a console logger for subcommands that do not clean.
func newLogger(w io.Writer, debug bool) *logrus.Logger {
	log, _, _ := logging.New(logging.Options{Debug: debug, Console: w})
	return log
}
