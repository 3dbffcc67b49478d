package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"fileorg/internal/category"
	"fileorg/internal/organizer"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "(error: path is empty)"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckLayout fails when the destination lies inside one of the category
// folders of the source, which would make a category collect into itself.
func CheckLayout(table category.Table, src, dst string) Result {
	const name = "Directory layout"

	absSrc, err := filepath.Abs(src)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("resolve %s: %v", src, err)}
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("resolve %s: %v", dst, err)}
	}
	for _, cat := range table.Names() {
		if within(filepath.Join(absSrc, cat), absDst) {
			return Result{Name: name, Detail: fmt.Sprintf("destination is inside category folder %q of the source", cat)}
		}
	}
	if within(absSrc, absDst) {
		return Result{Name: name, Passed: true, Detail: "destination inside source (final folder will be rescanned on later runs)"}
	}
	return Result{Name: name, Passed: true, Detail: "source and destination are separate"}
}

// CheckArchive reports whether a previous archive will be replaced.
func CheckArchive(dst string) Result {
	const name = "Archive"

	path := filepath.Join(dst, organizer.ArchiveName)
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
	case err != nil:
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	case info.IsDir():
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	default:
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (existing %s archive will be overwritten)", path, humanize.Bytes(uint64(info.Size())))}
	}
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
