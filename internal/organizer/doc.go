// Package organizer runs the categorize, collect and compress sequence over a
// source and destination directory pair.
//
// A run creates one folder per category under the source root, copies every
// file whose extension matches a category into that folder, merges the
// category folders into destination/final_folder and compresses that folder
// into destination/final_folder.zip. Progress is reported as an ordered stream
// of Events ending in exactly one outcome event; the same Outcome is returned
// to the caller.
//
// Per-file and per-category failures are reported as events and do not stop
// the run. Validation, traversal and archive failures are fatal and end the run
// with a failure outcome. Start runs the same routine on a background
// goroutine and delivers events on a channel so callers never block the
// worker.
package organizer
