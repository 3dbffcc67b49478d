// Package archive writes and inspects the zip bundle produced at the end of a
// run.
//
// ZipDirectory walks a directory tree and stores every regular file with
// deflate compression under its slash-separated path relative to the root.
// Directories are not stored as entries. List reads an archive back for
// inspection and tests.
package archive
