// Package logs reads the fileorg log file written when [logging] file = true.
//
// Last returns the trailing lines of the file, Since continues from a byte
// offset, and Follow polls for appended lines until its context ends. A
// missing log file reads as empty.
package logs
