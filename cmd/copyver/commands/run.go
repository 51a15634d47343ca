package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/copyver/cmd/copyver/opts"
	"github.com/walteh/copyver/pkg/config"
	"github.com/walteh/copyver/pkg/log"
	"github.com/walteh/copyver/pkg/operation"
)

// NewRunCmd creates the run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		keep   int
		atomic bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Create a timestamped version of the configured file",
		Long: `Run copies the configured source file into the destination directory as
{name}_{YYYYMMDD_HHMMSS}{ext}, preserving its permissions and modification time.
It will:
1. Load and validate the config
2. Save --keep into max_versions when given
3. Copy the source into the destination
4. Delete the oldest versions beyond max_versions (0 keeps everything)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("keep") {
				cfg.MaxVersions = config.NewMaxVersions(keep)
				if err := opts.SaveConfig(ctx, cfg); err != nil {
					return err
				}
			}

			res, err := opts.Versioner(atomic).VersionNow(ctx, opts.ConfigPath, cfg)
			if err != nil {
				return err
			}

			reportRun(ctx, opts, *cfg, res)
			opts.UserLogger.LogCreated("Version created: " + filepath.Base(res.Path))
			return nil
		},
	}

	cmd.Flags().IntVarP(&keep, "keep", "k", 0, "set max_versions before running and save it (0 keeps everything)")
	cmd.Flags().BoolVar(&atomic, "atomic", false, "stage the copy in a temporary file and rename it into place")

	return cmd
}

func reportRun(ctx context.Context, opts *opts.RootOpts, cfg config.Config, res *operation.Result) {
	cfg = cfg.Trimmed()

	opts.Logger.Header("creating version")
	opts.Logger.StartRun(ctx, log.RunOperation{
		Source:      cfg.SourcePath(),
		Destination: cfg.DestinationDirectory,
		MaxVersions: cfg.MaxVersions.Int(),
	})
	defer opts.Logger.EndRun(ctx)

	created := log.VersionOperation{
		Name:   filepath.Base(res.Path),
		Status: "CREATED",
		IsNew:  true,
	}
	if info, err := os.Stat(res.Path); err == nil {
		created.Size = info.Size()
	}
	opts.Logger.LogVersion(ctx, created)

	reportPruned(ctx, opts, res)
}

func reportPruned(ctx context.Context, opts *opts.RootOpts, res *operation.Result) {
	for _, name := range res.Pruned {
		opts.Logger.LogVersion(ctx, log.VersionOperation{
			Name:      name,
			Status:    "PRUNED",
			IsRemoved: true,
		})
	}
	for _, f := range res.PruneFailures {
		opts.Logger.LogVersion(ctx, log.VersionOperation{
			Name:      f.Name,
			Status:    "FAILED",
			IsRemoved: true,
			IsFailed:  true,
		})
		opts.Logger.Warningf("could not delete %s: %v", f.Name, f.Err)
	}
}
