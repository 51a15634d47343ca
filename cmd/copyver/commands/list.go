package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/walteh/copyver/cmd/copyver/opts"
	"github.com/walteh/copyver/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🕒 modTimeLayout is how the list table shows modification times
const modTimeLayout = "2006-01-02 15:04:05"

// NewListCmd creates the list command
func NewListCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show existing versions of the configured file",
		Long: `List prints every version of the configured file found in the destination
directory, newest first. Versions past max_versions are marked; the next run or
prune deletes them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			vs, err := opts.Versioner(false).List(*cfg)
			if err != nil {
				return err
			}

			trimmed := cfg.Trimmed()
			if len(vs) == 0 {
				opts.UserLogger.LogStateChange(fmt.Sprintf("No versions of %s in %s", trimmed.SourceFileName, trimmed.DestinationDirectory))
				return nil
			}

			keep := cfg.MaxVersions.Int()
			rows := [][]string{{"#", "Version", "Size", "Modified", "Status"}}
			for i, v := range vs {
				status := "kept"
				if keep > 0 && i >= keep {
					status = "beyond max_versions"
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					v.Name,
					log.HumanSize(v.Size),
					v.ModTime.Format(modTimeLayout),
					status,
				})
			}

			if err := opts.UserLogger.LogTable(rows); err != nil {
				return errors.Errorf("rendering versions table: %w", err)
			}
			return nil
		},
	}

	return cmd
}
