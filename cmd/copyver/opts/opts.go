package opts

import (
	"context"
	"time"

	"github.com/walteh/copyver/pkg/config"
	"github.com/walteh/copyver/pkg/log"
	"github.com/walteh/copyver/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands. The root command
// fills the loggers and resolves ConfigPath before any subcommand runs.
type RootOpts struct {
	ConfigPath string
	Debug      bool

	Logger     *log.Logger
	UserLogger *log.UserLogger

	// Now overrides the version timestamp clock. Nil means time.Now.
	Now func() time.Time
}

// LoadConfig reads the record at ConfigPath. A missing file is reported as
// operation.KindConfigNotFound so callers can render it like a run failure.
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, o.ConfigPath)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return nil, &operation.Error{Kind: operation.KindConfigNotFound, Path: o.ConfigPath, Err: err}
		}
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is LoadConfig, but starts from an empty record when the file
// does not exist yet.
func (o *RootOpts) LoadOrDefault(ctx context.Context) (*config.Config, error) {
	cfg, err := o.LoadConfig(ctx)
	if operation.KindOf(err) == operation.KindConfigNotFound {
		return config.Default(), nil
	}
	return cfg, err
}

// SaveConfig writes cfg back to ConfigPath.
func (o *RootOpts) SaveConfig(ctx context.Context, cfg *config.Config) error {
	if err := config.Save(ctx, o.ConfigPath, cfg); err != nil {
		return errors.Errorf("saving config: %w", err)
	}
	return nil
}

// Versioner builds the versioner every command shares.
func (o *RootOpts) Versioner(atomic bool) *operation.Versioner {
	return operation.New(operation.Options{
		Now:    o.Now,
		Atomic: atomic,
	})
}
