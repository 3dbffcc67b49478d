// Package runlock serializes CLI runs for one user with an advisory file
// lock in the state directory.
//
// The organizer library does not take the lock; only "fileorg run" does, so a
// second invocation fails fast instead of racing the first over the same
// folders.
package runlock
