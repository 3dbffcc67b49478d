package preflight

import (
	"fileorg/internal/category"
	"fileorg/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check for a source and destination pair. The state
// directory is checked when cfg is non-nil.
func RunAll(cfg *config.Config, table category.Table, src, dst string) []Result {
	results := []Result{
		CheckDirectoryAccess("Source directory", src),
		CheckDirectoryAccess("Destination directory", dst),
		CheckLayout(table, src, dst),
		CheckArchive(dst),
	}
	if cfg != nil {
		results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	}
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
