package operation

import (
	"io"
	"io/fs"
	"os"
	"time"

	"gitlab.com/tozd/go/errors"
)

// copyFile writes src over dst in place, then copies the metadata. A crash
// mid-copy can leave a truncated dst; copyFileAtomic avoids that.
func copyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination: %w", err)
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Errorf("copying bytes: %w", err)
	}
	if err := out.Sync(); err != nil {
		return errors.Errorf("syncing destination: %w", err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing destination: %w", err)
	}

	return copyMetadata(dst, info)
}

// copyMetadata carries the permission bits and modification time over.
// Access time is left as the OS set it.
func copyMetadata(dst string, info fs.FileInfo) error {
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Errorf("setting permissions: %w", err)
	}
	if err := os.Chtimes(dst, time.Time{}, info.ModTime()); err != nil {
		return errors.Errorf("setting modification time: %w", err)
	}
	return nil
}
