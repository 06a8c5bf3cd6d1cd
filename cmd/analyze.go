package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/cleaninstall/internal/analyze"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/config"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/pattern"
	"github.com/lakshaymaurya-felt/cleaninstall/internal/ui"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		debug       bool
		depth       int
		minSize     string
		limit       int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Show how much space a cleanup would reclaim",
		Long: `Plan a cleanup without deleting anything, size every target in parallel,
and print the largest ones per workspace root.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			var threshold uint64
			if minSize != "" {
				n, err := ui.ParseSize(minSize)
				if err != nil {
					return err
				}
				threshold = n
			}

			var o config.Overrides
			if cmd.Flags().Changed("depth") {
				o.ScanDepth = &depth
			}

			log := newLogger(cmd.ErrOrStderr(), debug)
			cfg := config.Assemble(dir, o, log)

			rep, err := analyze.NewScanner(concurrency).Analyze(dir, cfg, pattern.Glob{}, log)
			if err != nil {
				return errors.Wrapf(err, "analyze %s", dir)
			}
			analyze.PrintStaticTree(cmd.OutOrStdout(), rep, analyze.TreeOptions{
				MinSize: threshold,
				Limit:   limit,
			})
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&debug, "debug", false, "Show detailed operation logs")
	flags.IntVar(&depth, "depth", config.DefaultScanDepth, "How deep to scan for nested packages when no workspaces are declared")
	flags.StringVar(&minSize, "min-size", "", "Minimum size to display (e.g., 100MB)")
	flags.IntVar(&limit, "limit", analyze.DefaultLimit, "Maximum entries per workspace root (0 = all)")
	flags.IntVar(&concurrency, "concurrency", 8, "Targets measured in parallel")
	return cmd
}
