// Package history persists a record of past organize runs in SQLite.
//
// The store is opt-in from the CLI ([history] enabled = true) and is never
// consulted by the organizer itself. Writes retry briefly when another process
// holds the database lock.
package history
