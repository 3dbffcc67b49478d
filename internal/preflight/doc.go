// Package preflight provides readiness checks for the directories a run
// touches.
//
// The CLI "fileorg check" command runs RunAll and renders each Result as a
// status line; "fileorg run" uses the same checks to refuse layouts that would
// make the collect step copy a folder into itself.
package preflight
