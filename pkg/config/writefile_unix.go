//go:build !windows

package config

import (
	"os"

	"github.com/google/renameio/v2"
	"gitlab.com/tozd/go/errors"
)

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := renameio.WriteFile(path, data, perm); err != nil {
		return errors.Errorf("replacing file atomically: %w", err)
	}
	return nil
}
