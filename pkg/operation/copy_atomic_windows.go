//go:build windows

package operation

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// renameio does not build on windows; same staging by hand.
func copyFileAtomic(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return errors.Errorf("creating pending file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		return errors.Errorf("copying bytes: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return errors.Errorf("syncing pending file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing pending file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return errors.Errorf("atomically replacing destination: %w", err)
	}
	committed = true

	return copyMetadata(dst, info)
}
