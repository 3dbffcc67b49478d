package main

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"fileorg/internal/organizer"
)

func renderSummary(outcome organizer.Outcome) string {
	s := outcome.Summary
	result := "success"
	if !outcome.Success {
		result = "failed"
	}
	archive := s.ArchivePath
	if archive == "" {
		archive = "-"
	}
	rows := [][]string{
		{"Run ID", outcome.RunID},
		{"Result", result},
		{"Category folders", strconv.Itoa(s.CategoriesPrepared)},
		{"Files copied", strconv.Itoa(s.FilesCopied)},
		{"Already in place", strconv.Itoa(s.FilesInPlace)},
		{"Copy failures", strconv.Itoa(s.CopyFailures)},
		{"Categories collected", strconv.Itoa(s.CategoriesCollected)},
		{"Collect failures", strconv.Itoa(s.CollectFailures)},
		{"Archive entries", strconv.Itoa(s.ArchiveEntries)},
		{"Archive", archive},
		{"Archive size", humanize.Bytes(uint64(s.ArchiveSize))},
		{"Duration", s.Duration.Round(time.Millisecond).String()},
	}
	return renderTableSpec(tableSpec{
		Title:   "Run summary",
		Headers: []string{"Field", "Value"},
		Rows:    rows,
	})
}
