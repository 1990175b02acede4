// Package fsutil holds the interruption-safe file writes used by every
// component that mutates the tree: data lands in a pending file next to the
// destination and is renamed over it, so a reader never observes a
// half-written file.
package fsutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// WriteFile atomically replaces path with data. When path already exists its
// permission bits are kept; otherwise perm applies, less the umask.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := renameio.WriteFile(path, data, perm, renameio.WithTempDir(filepath.Dir(path))); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// CopyFile atomically copies src to dst, creating missing parent directories
// and carrying over the permission bits and modification time of src.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", dst, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	pf, err := renameio.NewPendingFile(dst,
		renameio.WithTempDir(filepath.Dir(dst)),
		renameio.WithStaticPermissions(info.Mode().Perm()))
	if err != nil {
		return fmt.Errorf("create pending file for %s: %w", dst, err)
	}
	defer pf.Cleanup()

	if _, err := io.Copy(pf, in); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := os.Chtimes(pf.Name(), info.ModTime(), info.ModTime()); err != nil {
		return err
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", dst, err)
	}
	return nil
}

// SameContent reports whether path exists and whether it holds exactly data.
// A missing path is not an error.
func SameContent(path string, data []byte) (exists, same bool, err error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	if info.Size() != int64(len(data)) {
		return true, false, nil
	}

	existing, err := os.ReadFile(path)
	if err != nil {
		return true, false, err
	}
	return true, bytes.Equal(existing, data), nil
}
