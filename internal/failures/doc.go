// Package failures classifies the errors that abort an organizer run.
//
// Fatal errors are tagged with one of the exported markers so callers can use
// errors.Is to decide how to present them (exit codes, hints) without parsing
// messages. Per-item failures are not wrapped here; they travel as progress
// events instead.
package failures
