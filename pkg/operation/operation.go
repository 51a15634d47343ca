// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/copyver/pkg/config"
	"github.com/walteh/copyver/pkg/versions"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options tunes a Versioner. The zero value is the production setup.
type Options struct {
	// Now supplies the timestamp for new versions. Defaults to time.Now.
	Now func() time.Time
	// Remover deletes pruned versions. Defaults to versions.OSRemover.
	Remover versions.Remover
	// Atomic stages each copy in a pending file and renames it into place
	// instead of writing the destination directly.
	Atomic bool
}

// 📦 Result describes one successful run.
type Result struct {
	// Path is the absolute path of the new version.
	Path string
	// Kept lists the versions left after pruning, newest first. Empty when
	// retention is unlimited.
	Kept []versions.Version
	// Pruned lists names of old versions deleted by this run.
	Pruned []string
	// PruneFailures lists old versions that could not be deleted. They never
	// turn a run into a failure.
	PruneFailures []versions.Failure
}

// 🎮 Versioner copies the configured source into its destination under a
// timestamped name and enforces the retention count. It holds no state
// between runs; the destination directory listing is read fresh every time.
// Runs against the same destination from several processes are not
// coordinated and can race while pruning.
type Versioner struct {
	now     func() time.Time
	remover versions.Remover
	atomic  bool
}

// 🏭 New creates a Versioner
func New(opts Options) *Versioner {
	v := &Versioner{
		now:     opts.Now,
		remover: opts.Remover,
		atomic:  opts.Atomic,
	}
	if v.now == nil {
		v.now = time.Now
	}
	if v.remover == nil {
		v.remover = versions.OSRemover
	}
	return v
}

// 🏃 Run creates one new version and returns its absolute path.
func (v *Versioner) Run(ctx context.Context, cfg config.Config) (string, error) {
	res, err := v.Execute(ctx, cfg)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// Execute is Run with the full pruning report.
func (v *Versioner) Execute(ctx context.Context, cfg config.Config) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if err := cfg.Validate(); err != nil {
		return nil, &Error{Kind: KindConfigIncomplete, Err: err}
	}
	cfg = cfg.Trimmed()

	src := cfg.SourcePath()
	info, err := os.Stat(src)
	if err != nil {
		return nil, &Error{Kind: KindSourceNotFound, Path: src, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &Error{Kind: KindSourceNotFound, Path: src, Err: errors.Errorf("not a regular file")}
	}

	dir := cfg.DestinationDirectory
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &Error{Kind: KindDestinationUnwritable, Path: dir, Err: err}
	}

	base, ext := versions.Split(cfg.SourceFileName)
	dst, err := filepath.Abs(filepath.Join(dir, versions.FileName(base, v.now(), ext)))
	if err != nil {
		return nil, &Error{Kind: KindDestinationUnwritable, Path: dir, Err: err}
	}

	logger.Debug().
		Str("source", src).
		Str("destination", dst).
		Bool("atomic", v.atomic).
		Msg("copying version")

	copyFn := copyFile
	if v.atomic {
		copyFn = copyFileAtomic
	}
	if err := copyFn(src, dst, info); err != nil {
		return nil, &Error{Kind: KindDestinationUnwritable, Path: dst, Err: err}
	}

	logger.Info().Str("path", dst).Msg("version created")

	res := &Result{Path: dst}

	keep := cfg.MaxVersions.Int()
	if keep <= 0 {
		return res, nil
	}

	existing, err := versions.List(os.DirFS(dir), base, ext)
	if err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("listing versions for retention")
		res.PruneFailures = append(res.PruneFailures, versions.Failure{Name: versions.Pattern(base, ext), Err: err})
		return res, nil
	}

	// the new copy carries the source mtime, which may be older than existing versions
	existing = versions.Pin(existing, filepath.Base(dst))

	report := versions.Prune(ctx, v.remover, dir, existing, keep)
	res.Kept = report.Kept
	res.Pruned = report.Removed
	res.PruneFailures = report.Failures

	logger.Debug().
		Int("keep", keep).
		Int("found", len(existing)).
		Int("pruned", len(report.Removed)).
		Int("failed", len(report.Failures)).
		Msg("retention applied")

	return res, nil
}

// 🧹 Prune applies the retention count without copying anything. It returns
// the report for the versions currently in the destination. keep <= 0 falls
// back to the configured count.
func (v *Versioner) Prune(ctx context.Context, cfg config.Config, keep int) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &Error{Kind: KindConfigIncomplete, Err: err}
	}
	cfg = cfg.Trimmed()
	if keep <= 0 {
		keep = cfg.MaxVersions.Int()
	}

	existing, err := v.List(cfg)
	if err != nil {
		return nil, err
	}

	report := versions.Prune(ctx, v.remover, cfg.DestinationDirectory, existing, keep)
	return &Result{
		Kept:          report.Kept,
		Pruned:        report.Removed,
		PruneFailures: report.Failures,
	}, nil
}

// 📋 List returns the versions of the configured file, newest first. A
// destination that does not exist yet holds no versions.
func (v *Versioner) List(cfg config.Config) ([]versions.Version, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &Error{Kind: KindConfigIncomplete, Err: err}
	}
	cfg = cfg.Trimmed()

	if _, err := os.Stat(cfg.DestinationDirectory); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	base, ext := versions.Split(cfg.SourceFileName)
	vs, err := versions.List(os.DirFS(cfg.DestinationDirectory), base, ext)
	if err != nil {
		return nil, errors.Errorf("listing versions in %s: %w", cfg.DestinationDirectory, err)
	}
	return vs, nil
}

// 🎯 VersionNow loads the record at configPath and runs it. A non-nil
// override replaces the loaded record and skips loading entirely. An empty
// configPath means config.DefaultPath.
func (v *Versioner) VersionNow(ctx context.Context, configPath string, override *config.Config) (*Result, error) {
	if override != nil {
		return v.Execute(ctx, *override)
	}

	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, errors.Errorf("resolving default config path: %w", err)
		}
		configPath = p
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return nil, &Error{Kind: KindConfigNotFound, Path: configPath, Err: err}
		}
		return nil, errors.Errorf("loading config: %w", err)
	}

	return v.Execute(ctx, *cfg)
}

// VersionNow runs the record at configPath with default options and returns
// the path of the new version.
func VersionNow(ctx context.Context, configPath string, override *config.Config) (string, error) {
	res, err := New(Options{}).VersionNow(ctx, configPath, override)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}
