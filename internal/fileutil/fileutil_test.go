package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCopyFileMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	if err := os.WriteFile(src, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileMode(src, dst, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "data" {
		t.Fatalf("content mismatch: got %q, want %q", got, "data")
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	// Check executable bits are set (umask may clear some bits).
	if info.Mode().Perm()&0o111 == 0 {
		t.Fatalf("expected executable bits, got %o", info.Mode().Perm())
	}
}

func TestCopyFileMode_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFileMode(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"), 0o644)
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestCopyFilePreserveKeepsModTimeAndOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "report.pdf")
	dst := filepath.Join(dir, "copy.pdf")

	if err := os.WriteFile(src, []byte("new content"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("stale content that is longer"), 0o644); err != nil {
		t.Fatal(err)
	}
	stamp := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(src, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	if err := CopyFilePreserve(src, dst); err != nil {
		t.Fatalf("CopyFilePreserve: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new content" {
		t.Fatalf("expected overwrite, got %q", got)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("mod time not preserved: got %v want %v", info.ModTime(), stamp)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode not preserved: got %o", info.Mode().Perm())
	}
}

func TestCopyFilePreserveSameFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := CopyFilePreserve(path, filepath.Join(dir, ".", "a.txt"))
	if !errors.Is(err, ErrSameFile) {
		t.Fatalf("expected ErrSameFile, got %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "keep me" {
		t.Fatalf("self copy must not truncate, got %q", got)
	}
}

func TestCopyFilePreserveRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFilePreserve(dir, filepath.Join(t.TempDir(), "x")); err == nil {
		t.Fatal("expected error when source is a directory")
	}
}

func TestCopyTreeMergesIntoExistingDestination(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	files := map[string]string{
		"a.txt":          "a",
		"nested/b.txt":   "b",
		"nested/x/c.txt": "c",
	}
	for rel, body := range files {
		path := filepath.Join(src, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.MkdirAll(filepath.Join(dst, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dst, "a.txt"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dst, "nested", "keep.txt"), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyTree(src, dst); err != nil {
		t.Fatalf("CopyTree: %v", err)
	}

	for rel, body := range files {
		got, err := os.ReadFile(filepath.Join(dst, rel))
		if err != nil {
			t.Fatalf("read %s: %v", rel, err)
		}
		if string(got) != body {
			t.Fatalf("%s: got %q want %q", rel, got, body)
		}
	}
	if got, err := os.ReadFile(filepath.Join(dst, "nested", "keep.txt")); err != nil || string(got) != "keep" {
		t.Fatalf("expected untouched extra file, got %q err %v", got, err)
	}
}

func TestCopyTreeMissingSource(t *testing.T) {
	err := CopyTree(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing source directory")
	}
}

func TestCopyTreeRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CopyTree(file, t.TempDir()); err == nil {
		t.Fatal("expected error when source is a file")
	}
}
