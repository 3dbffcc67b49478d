package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// EntryFunc is invoked after each file has been written to the archive.
type EntryFunc func(name string, size int64)

// Result summarizes a finished archive.
type Result struct {
	Path    string
	Entries int
	Size    int64
}

// ZipDirectory creates (or truncates) dest and writes every regular file under
// root into it with deflate compression. Entry names are relative to root and
// use forward slashes. Any error aborts the archive; the partially written file
// is left for the caller to inspect.
func ZipDirectory(root, dest string, onEntry EntryFunc) (Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Result{}, err
	}
	if !info.IsDir() {
		return Result{}, ErrExpectedDirectory
	}
	if inside(root, dest) {
		return Result{}, ErrArchiveInsideRoot
	}

	file, err := os.Create(dest)
	if err != nil {
		return Result{}, fmt.Errorf("create archive: %w", err)
	}
	w := zip.NewWriter(file)

	result := Result{Path: dest}
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		name := filepath.ToSlash(rel)
		written, err := addFile(w, path, name)
		if err != nil {
			return err
		}
		result.Entries++
		if onEntry != nil {
			onEntry(name, written)
		}
		return nil
	})

	closeErr := w.Close()
	fileErr := file.Close()
	if walkErr != nil {
		return result, walkErr
	}
	if err := errors.Join(closeErr, fileErr); err != nil {
		return result, fmt.Errorf("finalize archive: %w", err)
	}

	if st, err := os.Stat(dest); err == nil {
		result.Size = st.Size()
	}
	return result, nil
}

func addFile(w *zip.Writer, path, name string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", name, err)
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return 0, fmt.Errorf("header for %s: %w", name, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	writer, err := w.CreateHeader(header)
	if err != nil {
		return 0, fmt.Errorf("create entry %s: %w", name, err)
	}
	n, err := io.Copy(writer, f)
	if err != nil {
		return n, fmt.Errorf("write entry %s: %w", name, err)
	}
	return n, nil
}

func inside(root, path string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
