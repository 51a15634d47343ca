package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/copyver/cmd/copyver/commands"
	"github.com/walteh/copyver/cmd/copyver/opts"
	"github.com/walteh/copyver/pkg/config"
	"github.com/walteh/copyver/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd builds the command tree around o. The persistent pre-run fills
// the loggers and the config path before any subcommand executes.
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copyver",
		Short: "Keep timestamped copies of a single file",
		Long: `copyver copies one configured file into a destination directory under a
timestamped name and keeps only the newest max_versions copies.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging(cmd.ErrOrStderr(), o.Debug)
			ctx := logger.WithContext(cmd.Context())
			cmd.SetContext(ctx)

			o.Logger = log.New(cmd.OutOrStdout(), logger)
			o.UserLogger = log.NewUserLogger(ctx, cmd.OutOrStdout())

			if o.ConfigPath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return errors.Errorf("resolving default config path: %w", err)
				}
				o.ConfigPath = p
			}

			logger.Debug().Str("config", o.ConfigPath).Str("command", cmd.CommandPath()).Msg("starting")
			return nil
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewRunCmd(o),
		commands.NewListCmd(o),
		commands.NewPruneCmd(o),
		commands.NewConfigCmd(o),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", "", "config file path (default: config.json next to the executable)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging builds the structured logger. Without --debug only warnings
// and errors reach w; the console lines cover the rest.
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
