package category

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	Texts  = "texts"
	Images = "images"
	Videos = "videos"
)

// Category is a named bucket and the extensions routed into it.
type Category struct {
	Name       string
	Extensions []string
}

// Table is an ordered, read-only set of categories.
type Table struct {
	categories []Category
}

var (
	ErrEmptyName      = errors.New("category name is empty")
	ErrDuplicateName  = errors.New("duplicate category name")
	ErrNoExtensions   = errors.New("category has no extensions")
	ErrInvalidName    = errors.New("category name must be a single path element")
	ErrEmptyExtension = errors.New("empty extension")
)

// Default returns the built-in table: texts, images and videos.
func Default() Table {
	t, err := New(
		Category{Name: Texts, Extensions: []string{".txt", ".doc", ".docx", ".pdf", ".rtf"}},
		Category{Name: Images, Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"}},
		Category{Name: Videos, Extensions: []string{".mp4", ".avi", ".mkv", ".mov", ".wmv"}},
	)
	if err != nil {
		panic(fmt.Sprintf("category: default table: %v", err))
	}
	return t
}

// New builds a table from the given categories, in order. Extensions are
// lower-cased and given a leading dot.
func New(categories ...Category) (Table, error) {
	seen := make(map[string]struct{}, len(categories))
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return Table{}, ErrEmptyName
		}
		if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return Table{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		if _, ok := seen[name]; ok {
			return Table{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		seen[name] = struct{}{}
		if len(c.Extensions) == 0 {
			return Table{}, fmt.Errorf("%w: %q", ErrNoExtensions, name)
		}
		exts := make([]string, 0, len(c.Extensions))
		for _, ext := range c.Extensions {
			normalized := normalizeExtension(ext)
			if normalized == "" {
				return Table{}, fmt.Errorf("%w in category %q", ErrEmptyExtension, name)
			}
			if !slices.Contains(exts, normalized) {
				exts = append(exts, normalized)
			}
		}
		out = append(out, Category{Name: name, Extensions: exts})
	}
	return Table{categories: out}, nil
}

// Categories returns a copy of the table contents in lookup order.
func (t Table) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Extensions: slices.Clone(c.Extensions)}
	}
	return out
}

// Names lists category names in lookup order.
func (t Table) Names() []string {
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

// Len reports the number of categories.
func (t Table) Len() int { return len(t.categories) }

// Match returns the category for a file name, or false when its extension is
// not listed anywhere.
func (t Table) Match(filename string) (string, bool) {
	ext := Extension(filename)
	if ext == "" {
		return "", false
	}
	for _, c := range t.categories {
		if slices.Contains(c.Extensions, ext) {
			return c.Name, true
		}
	}
	return "", false
}

// Extension returns the lower-cased extension of a file name including the
// dot. Leading dots are part of the name, so ".bashrc" has no extension.
func Extension(filename string) string {
	base := filepath.Base(filename)
	trimmed := strings.TrimLeft(base, ".")
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(filepath.Ext(trimmed))
}

// Label returns a display form of a category name ("texts" -> "Texts").
func Label(name string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(name, "_", " "))
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	ext = strings.TrimLeft(ext, ".")
	if ext == "" {
		return ""
	}
	return "." + ext
}
