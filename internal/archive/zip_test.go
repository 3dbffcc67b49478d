package archive

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestZipDirectory_WithSubdirs(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "root.txt"), "root content")
	writeTestFile(t, filepath.Join(root, "texts", "a.txt"), "alpha")
	writeTestFile(t, filepath.Join(root, "images", "nested", "b.jpg"), "beta")
	if err := os.MkdirAll(filepath.Join(root, "videos"), 0o755); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(t.TempDir(), "bundle.zip")
	var seen []string
	result, err := ZipDirectory(root, dest, func(name string, size int64) {
		seen = append(seen, name)
	})
	if err != nil {
		t.Fatalf("ZipDirectory failed: %v", err)
	}
	if result.Entries != 3 {
		t.Fatalf("expected 3 entries, got %d", result.Entries)
	}
	if result.Size <= 0 {
		t.Fatalf("expected archive size to be recorded, got %d", result.Size)
	}
	if len(seen) != 3 {
		t.Fatalf("expected callback per file, got %v", seen)
	}

	r, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer r.Close()

	found := make(map[string]string)
	for _, f := range r.File {
		if f.Method != zip.Deflate {
			t.Errorf("entry %s stored with method %d, want deflate", f.Name, f.Method)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", f.Name, err)
		}
		body, _ := io.ReadAll(rc)
		rc.Close()
		found[f.Name] = string(body)
	}

	expected := map[string]string{
		"root.txt":            "root content",
		"texts/a.txt":         "alpha",
		"images/nested/b.jpg": "beta",
	}
	if len(found) != len(expected) {
		t.Fatalf("unexpected entries: %v", found)
	}
	for name, body := range expected {
		if found[name] != body {
			t.Errorf("entry %q = %q, want %q", name, found[name], body)
		}
	}
}

func TestZipDirectory_EmptyTree(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(t.TempDir(), "empty.zip")

	result, err := ZipDirectory(root, dest, nil)
	if err != nil {
		t.Fatalf("ZipDirectory failed: %v", err)
	}
	if result.Entries != 0 {
		t.Fatalf("expected no entries, got %d", result.Entries)
	}
	names, err := Names(dest)
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty archive, got %v", names)
	}
}

func TestZipDirectory_TruncatesExistingArchive(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "one.txt"), "1")
	dest := filepath.Join(t.TempDir(), "out.zip")
	writeTestFile(t, dest, "this is not a zip file and should be replaced")

	if _, err := ZipDirectory(root, dest, nil); err != nil {
		t.Fatalf("ZipDirectory failed: %v", err)
	}
	names, err := Names(dest)
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if len(names) != 1 || names[0] != "one.txt" {
		t.Fatalf("unexpected entries: %v", names)
	}
}

func TestZipDirectory_FileNotDir(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "notadir.txt")
	writeTestFile(t, tmpFile, "content")

	_, err := ZipDirectory(tmpFile, filepath.Join(t.TempDir(), "output.zip"), nil)
	if !errors.Is(err, ErrExpectedDirectory) {
		t.Errorf("Expected ErrExpectedDirectory, got: %v", err)
	}
}

func TestZipDirectory_DestInsideRoot(t *testing.T) {
	root := t.TempDir()
	_, err := ZipDirectory(root, filepath.Join(root, "self.zip"), nil)
	if !errors.Is(err, ErrArchiveInsideRoot) {
		t.Fatalf("expected ErrArchiveInsideRoot, got %v", err)
	}
}

func TestZipDirectory_UncreatableDest(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(t.TempDir(), "missing-parent", "out.zip")
	if _, err := ZipDirectory(root, dest, nil); err == nil {
		t.Fatal("expected error when archive cannot be created")
	}
}

func TestList(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "b.txt"), "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	writeTestFile(t, filepath.Join(root, "a", "c.txt"), "c")
	dest := filepath.Join(t.TempDir(), "list.zip")
	if _, err := ZipDirectory(root, dest, nil); err != nil {
		t.Fatal(err)
	}

	entries, err := List(dest)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "a/c.txt" || entries[1].Name != "b.txt" {
		t.Fatalf("entries not sorted: %+v", entries)
	}
	if entries[1].Size != 32 {
		t.Fatalf("unexpected size for b.txt: %d", entries[1].Size)
	}
	if entries[1].MethodName() != "deflate" {
		t.Fatalf("unexpected method %q", entries[1].MethodName())
	}
}

func TestList_MissingArchive(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "nope.zip")); err == nil {
		t.Fatal("expected error for missing archive")
	}
}
