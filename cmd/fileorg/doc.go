// Package main hosts the fileorg CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, builds the logger,
// takes the run lock and hands a source/destination pair to the organizer.
// Progress events are rendered by a reporter selected with --output, and
// supporting commands cover preflight checks, the category table, archive
// inspection, run history and configuration scaffolding.
//
// Keep this package lean: behavior lives in the internal packages and is only
// surfaced here.
package main
