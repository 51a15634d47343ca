package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/copyver/cmd/copyver/opts"
	"github.com/walteh/copyver/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create, inspect and edit the versioning record",
		Long: `Config manages the record that run, list and prune read:
  ruta_origen   directory holding the source file
  archivo       source file name
  ruta_destino  directory receiving the versions
  max_versions  how many versions to keep (0 keeps everything)`,
	}

	cmd.AddCommand(
		newConfigInitCmd(opts),
		newConfigShowCmd(opts),
		newConfigSetSourceCmd(opts),
		newConfigSetDestinationCmd(opts),
		newConfigSetKeepCmd(opts),
	)

	return cmd
}

func newConfigInitCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write an empty record if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := config.EnsureDefault(cmd.Context(), opts.ConfigPath)
			if err != nil {
				return err
			}

			if created {
				opts.UserLogger.LogCreated("Created " + opts.ConfigPath)
				opts.UserLogger.LogHint("Fill it with: copyver config set-source PATH and copyver config set-destination DIR")
				return nil
			}

			opts.UserLogger.LogStateChange("Config already exists at " + opts.ConfigPath)
			return nil
		},
	}
}

func newConfigShowCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the record and whether it is complete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.LoadConfig(cmd.Context())
			if err != nil {
				return err
			}

			keep := strconv.Itoa(cfg.MaxVersions.Int())
			if cfg.MaxVersions.Int() == 0 {
				keep += " (unlimited)"
			}

			if err := opts.UserLogger.LogTable([][]string{
				{"Field", "Value"},
				{"file", cfg.Location()},
				{"ruta_origen", cfg.SourceDirectory},
				{"archivo", cfg.SourceFileName},
				{"ruta_destino", cfg.DestinationDirectory},
				{"max_versions", keep},
			}); err != nil {
				return errors.Errorf("rendering config table: %w", err)
			}

			if err := cfg.Validate(); err != nil {
				opts.UserLogger.LogValidation(false, err.Error(), nil)
				return nil
			}
			opts.UserLogger.LogValidation(true, "Config is complete", nil)
			return nil
		},
	}
}

func newConfigSetSourceCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "set-source PATH",
		Short: "Set the file to version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadOrDefault(ctx)
			if err != nil {
				return err
			}
			if err := cfg.SetSource(args[0]); err != nil {
				return err
			}

			if info, err := os.Stat(cfg.SourcePath()); err != nil || !info.Mode().IsRegular() {
				opts.UserLogger.LogValidation(false, "Source is not a regular file yet: "+cfg.SourcePath(), nil)
			}

			if err := opts.SaveConfig(ctx, cfg); err != nil {
				return err
			}
			opts.UserLogger.LogStateChange("Source set to " + cfg.SourcePath())
			return nil
		},
	}
}

func newConfigSetDestinationCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "set-destination DIR",
		Short: "Set the directory receiving the versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadOrDefault(ctx)
			if err != nil {
				return err
			}
			if err := cfg.SetDestination(args[0]); err != nil {
				return err
			}

			if err := opts.SaveConfig(ctx, cfg); err != nil {
				return err
			}
			opts.UserLogger.LogStateChange("Destination set to " + cfg.DestinationDirectory)
			return nil
		},
	}
}

func newConfigSetKeepCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "set-keep N",
		Short: "Set max_versions (0 keeps everything)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			n, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return errors.Errorf("invalid max_versions %q: %w", args[0], err)
			}

			cfg, err := opts.LoadOrDefault(ctx)
			if err != nil {
				return err
			}
			cfg.MaxVersions = config.NewMaxVersions(n)

			if err := opts.SaveConfig(ctx, cfg); err != nil {
				return err
			}
			opts.UserLogger.LogStateChange(fmt.Sprintf("max_versions set to %d", cfg.MaxVersions.Int()))
			return nil
		},
	}
}
