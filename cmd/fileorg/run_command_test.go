package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"fileorg/internal/archive"
	"fileorg/internal/failures"
	"fileorg/internal/organizer"
	"fileorg/internal/runlock"
	"fileorg/internal/testsupport"
)

func seedScenario(t *testing.T, src string) {
	t.Helper()
	testsupport.WriteTree(t, src, map[string]string{
		"a.txt": "alpha",
		"b.jpg": "bravo",
		"c.bin": "charlie",
	})
}

func TestRunCommandTextOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	seedScenario(t, env.src)

	out, _, err := runCLI(t, []string{"run", env.src, env.dst}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "created category folder texts")
	requireContains(t, out, "copied a.txt")
	requireContains(t, out, "[Images] copied b.jpg")
	requireContains(t, out, "compressed texts/a.txt")
	requireContains(t, out, "operation completed successfully")
	requireNotContains(t, out, "c.bin")
	requireNotContains(t, out, "\x1b[")

	names, err := archive.Names(filepath.Join(env.dst, organizer.ArchiveName))
	if err != nil {
		t.Fatalf("list archive: %v", err)
	}
	if strings.Join(names, ",") != "images/b.jpg,texts/a.txt" {
		t.Fatalf("unexpected archive entries %v", names)
	}
}

func TestRunCommandJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	seedScenario(t, env.src)

	out, _, err := runCLI(t, []string{"run", "--output", "json", env.src, env.dst}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var lines []map[string]any
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var line map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			t.Fatalf("decode %q: %v", scanner.Text(), err)
		}
		lines = append(lines, line)
	}
	if len(lines) < 2 {
		t.Fatalf("expected several json lines, got %d", len(lines))
	}
	if lines[0]["seq"] != float64(1) || lines[0]["kind"] != "progress" {
		t.Fatalf("unexpected first line %v", lines[0])
	}
	last := lines[len(lines)-1]
	if last["kind"] != "outcome" || last["success"] != true || last["message"] != "operation completed successfully" {
		t.Fatalf("unexpected outcome line %v", last)
	}
	summary, ok := last["summary"].(map[string]any)
	if !ok || summary["files_copied"] != float64(2) || summary["archive_entries"] != float64(2) {
		t.Fatalf("unexpected summary %v", last["summary"])
	}
}

func TestRunCommandBarOutputWithSummary(t *testing.T) {
	env := setupCLITestEnv(t)
	seedScenario(t, env.src)

	out, _, err := runCLI(t, []string{"run", "-o", "bar", "--summary", env.src, env.dst}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "operation completed successfully")
	requireContains(t, out, "Run summary")
	requireContains(t, out, "Files copied")
	requireNotContains(t, out, "copied a.txt")
}

func TestRunCommandMissingSourceFails(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"run", filepath.Join(env.baseDir, "missing"), env.dst}, env.configPath)
	if err == nil {
		t.Fatal("expected run to fail")
	}
	if !errors.Is(err, failures.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	requireContains(t, err.Error(), "hint:")
	requireContains(t, out, "general error: ")
	testsupport.RequireMissing(t, filepath.Join(env.dst, organizer.FinalFolderName))
}

func TestRunCommandRejectsDestinationInsideCategory(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"run", env.src, filepath.Join(env.src, "videos", "out")}, env.configPath)
	if !errors.Is(err, failures.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRunCommandRejectsUnknownOutput(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"run", "--output", "xml", env.src, env.dst}, env.configPath)
	if !errors.Is(err, failures.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunCommandRespectsRunLock(t *testing.T) {
	env := setupCLITestEnv(t)
	lock, err := runlock.Acquire(env.cfg.LockPath())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer lock.Release()

	_, _, err = runCLI(t, []string{"run", env.src, env.dst}, env.configPath)
	if !errors.Is(err, runlock.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	testsupport.RequireMissing(t, filepath.Join(env.dst, organizer.ArchiveName))
}

func TestRunCommandRecordsHistory(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithHistory())
	seedScenario(t, env.src)

	if _, _, err := runCLI(t, []string{"run", env.src, env.dst}, env.configPath); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, _, err := runCLI(t, []string{"run", filepath.Join(env.baseDir, "missing"), env.dst}, env.configPath); err == nil {
		t.Fatal("expected second run to fail")
	}

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, env.src)
	requireContains(t, out, "failed")
	requireContains(t, out, "ok")

	out, _, err = runCLI(t, []string{"history", "--limit", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("history --limit: %v", err)
	}
	requireContains(t, out, "missing")
	requireNotContains(t, out, "│ ok")
}

func TestHistoryCommandDisabled(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "Run history is disabled")
}
