// Package fileutil holds the file copy primitives used by the organizer:
// single-file copies that keep permissions and modification times, and a
// recursive merge copy for whole directories.
package fileutil
