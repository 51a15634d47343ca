package versions

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Remover deletes a single file.
type Remover interface {
	Remove(path string) error
}

// RemoverFunc adapts a function to Remover.
type RemoverFunc func(path string) error

func (f RemoverFunc) Remove(path string) error { return f(path) }

// OSRemover deletes from the local filesystem.
var OSRemover Remover = RemoverFunc(os.Remove)

// Failure is an old version that could not be deleted.
type Failure struct {
	Name string
	Err  error
}

// PruneReport describes what a Prune call did.
type PruneReport struct {
	Kept     []Version
	Removed  []string
	Failures []Failure
}

// Prune keeps the first keep entries of vs (already sorted newest first) and
// deletes the rest from dir. keep <= 0 deletes nothing. A delete failure is
// logged and recorded in the report; it never stops the remaining deletes.
// A version that is already gone counts as removed.
func Prune(ctx context.Context, r Remover, dir string, vs []Version, keep int) PruneReport {
	logger := zerolog.Ctx(ctx)

	if keep <= 0 || len(vs) <= keep {
		return PruneReport{Kept: vs}
	}

	report := PruneReport{Kept: vs[:keep]}
	for _, v := range vs[keep:] {
		path := filepath.Join(dir, filepath.FromSlash(v.Name))
		err := r.Remove(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Err(err).Str("path", path).Msg("removing old version")
			report.Failures = append(report.Failures, Failure{Name: v.Name, Err: err})
			continue
		}
		logger.Debug().Str("path", path).Msg("removed old version")
		report.Removed = append(report.Removed, v.Name)
	}

	return report
}
