// Package logging assembles structured slog loggers and formatting helpers used
// across fileorg.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so organizer code can tag log
// lines with the run ID and the step being executed. The package also provides
// a no-op logger for tests and wiring code that cannot fail.
//
// Logs are diagnostic output written to stderr (and optionally a file). They
// are separate from the progress event stream a run reports to its caller.
package logging
