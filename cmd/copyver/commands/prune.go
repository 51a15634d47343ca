package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/copyver/cmd/copyver/opts"
	"gitlab.com/tozd/go/errors"
)

// NewPruneCmd creates the prune command
func NewPruneCmd(opts *opts.RootOpts) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old versions without creating a new one",
		Long: `Prune applies the retention count to the versions already in the destination
directory. --keep overrides max_versions for this call only. With neither set,
nothing is deleted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			if keep <= 0 && cfg.MaxVersions.Int() <= 0 {
				opts.UserLogger.LogValidation(false, "Retention is unlimited; nothing to prune", nil)
				return nil
			}

			res, err := opts.Versioner(false).Prune(ctx, *cfg, keep)
			if err != nil {
				return err
			}

			opts.Logger.Header("pruning versions")
			reportPruned(ctx, opts, res)
			opts.Logger.Successf("Pruned %d version(s), kept %d", len(res.Pruned), len(res.Kept))

			if len(res.PruneFailures) > 0 {
				return errors.Errorf("%d version(s) could not be deleted", len(res.PruneFailures))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&keep, "keep", "k", 0, "number of versions to keep (default: max_versions)")

	return cmd
}
