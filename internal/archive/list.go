package archive

import (
	"archive/zip"
	"fmt"
	"sort"
)

// Entry describes one file stored in an archive.
type Entry struct {
	Name           string
	Size           uint64
	CompressedSize uint64
	Method         uint16
}

// MethodName returns a readable compression method label.
func (e Entry) MethodName() string {
	switch e.Method {
	case zip.Store:
		return "store"
	case zip.Deflate:
		return "deflate"
	default:
		return fmt.Sprintf("method-%d", e.Method)
	}
}

// List returns the entries of a zip archive sorted by name.
func List(path string) ([]Entry, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, Entry{
			Name:           f.Name,
			Size:           f.UncompressedSize64,
			CompressedSize: f.CompressedSize64,
			Method:         f.Method,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Names returns just the entry names of an archive, sorted.
func Names(path string) ([]string, error) {
	entries, err := List(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}
