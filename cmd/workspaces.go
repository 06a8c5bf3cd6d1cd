package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/cleaninstall/internal/clean"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/config"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/pattern"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/ui"
)

func newWorkspacesCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "workspaces [path]",
		Short: "List the workspace roots that would be cleaned",
		Long:  "Resolve workspace patterns from package.json, .cleaninstallnoderc and pnpm-workspace.yaml and print the directories used as cleaning roots.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			root, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			info, err := os.Stat(root)
			if err != nil {
				return errors.Wrapf(err, "workspaces %s", root)
			}
			if !info.IsDir() {
				return errors.Errorf("%s is not a directory", root)
			}

			log := newLogger(cmd.ErrOrStderr(), debug)
			cfg := config.Assemble(root, config.Overrides{}, log)
			out := cmd.OutOrStdout()

			if !cfg.HasWorkspaces() {
				fmt.Fprintln(out, ui.MutedStyle.Render(fmt.Sprintf(
					"No workspace patterns declared; nested packages are scanned up to depth %d.", cfg.ScanDepth())))
				return nil
			}

			roots := clean.Locate(root, cfg, pattern.Glob{}, log)
			fmt.Fprint(out, ui.RenderRoots(roots[0], roots))
			return nil
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "Show pattern resolution details")
	return cmd
}
