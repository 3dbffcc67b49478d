package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrSameFile is returned when source and destination refer to the same file.
var ErrSameFile = errors.New("source and destination are the same file")

// CopyFileMode streams src to dst, setting the given file mode on dst.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// CopyFilePreserve copies src to dst, overwriting dst, and carries over the
// permission bits and modification time of src. It refuses to copy a file
// onto itself and reports ErrSameFile instead, leaving the file untouched.
func CopyFilePreserve(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("copy %s: is a directory", src)
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return ErrSameFile
	}

	if err := CopyFileMode(src, dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}
	// O_TRUNC on an existing file keeps its old mode.
	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("set mode: %w", err)
	}
	mtime := srcInfo.ModTime()
	if err := os.Chtimes(dst, mtime, mtime); err != nil {
		return fmt.Errorf("set times: %w", err)
	}
	return nil
}

// CopyTree recursively merges the contents of src into dst. Directories are
// created as needed, existing files are overwritten, and files already present
// in dst but absent from src are left alone. Per-file errors do not stop the
// copy; they are joined and returned once everything else has been copied.
// Symlinked directories are not followed.
func CopyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("copy tree %s: not a directory", src)
	}
	if err := os.MkdirAll(dst, info.Mode().Perm()|0o700); err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	var errs []error
	walkErr := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == src {
				return err
			}
			errs = append(errs, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			if rel == "." {
				return nil
			}
			dirInfo, err := d.Info()
			if err != nil {
				errs = append(errs, err)
				return filepath.SkipDir
			}
			if err := os.MkdirAll(target, dirInfo.Mode().Perm()|0o700); err != nil {
				errs = append(errs, fmt.Errorf("create %s: %w", target, err))
				return filepath.SkipDir
			}
		case d.Type()&fs.ModeSymlink != 0:
			resolved, err := os.Stat(path)
			if err != nil {
				errs = append(errs, fmt.Errorf("resolve %s: %w", path, err))
				return nil
			}
			if resolved.IsDir() {
				return nil
			}
			if err := CopyFilePreserve(path, target); err != nil && !errors.Is(err, ErrSameFile) {
				errs = append(errs, fmt.Errorf("copy %s: %w", rel, err))
			}
		case d.Type().IsRegular():
			if err := CopyFilePreserve(path, target); err != nil && !errors.Is(err, ErrSameFile) {
				errs = append(errs, fmt.Errorf("copy %s: %w", rel, err))
			}
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}
	return errors.Join(errs...)
}
