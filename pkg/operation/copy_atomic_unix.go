//go:build !windows

package operation

import (
	"io"
	"io/fs"
	"os"

	"github.com/google/renameio/v2"
	"gitlab.com/tozd/go/errors"
)

// copyFileAtomic stages the copy in a pending file next to dst and renames it
// into place, so dst is either absent, the previous content, or complete.
func copyFileAtomic(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	pending, err := renameio.NewPendingFile(dst, renameio.WithPermissions(info.Mode().Perm()))
	if err != nil {
		return errors.Errorf("creating pending file: %w", err)
	}
	defer func() {
		// no-op once committed
		_ = pending.Cleanup()
	}()

	if _, err := io.Copy(pending, in); err != nil {
		return errors.Errorf("copying bytes: %w", err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return errors.Errorf("atomically replacing destination: %w", err)
	}

	return copyMetadata(dst, info)
}
