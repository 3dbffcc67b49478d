package organizer

import (
	"time"
)

// Kind distinguishes progress events from the terminal outcome event.
type Kind string

const (
	KindProgress Kind = "progress"
	KindOutcome  Kind = "outcome"
)

// Step names the phase of a run that produced an event.
type Step string

const (
	StepValidate   Step = "validate"
	StepPrepare    Step = "prepare"
	StepCategorize Step = "categorize"
	StepFinalize   Step = "finalize"
	StepCollect    Step = "collect"
	StepCompress   Step = "compress"
	StepOutcome    Step = "outcome"
)

// Event is one entry of the progress stream.
type Event struct {
	// Seq starts at 1 and increases by one for every event of a run.
	Seq      int
	Time     time.Time
	Kind     Kind
	Step     Step
	Message  string
	Category string
	File     string
	Err      error
	// Success is only meaningful on the outcome event.
	Success bool
}

// Failed reports whether the event describes a failure.
func (e Event) Failed() bool {
	if e.Kind == KindOutcome {
		return !e.Success
	}
	return e.Err != nil
}

// Sink receives events in emission order.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// Summary counts what a run did.
type Summary struct {
	CategoriesPrepared  int           `json:"categories_prepared"`
	FilesCopied         int           `json:"files_copied"`
	FilesInPlace        int           `json:"files_in_place"`
	CopyFailures        int           `json:"copy_failures"`
	CategoriesCollected int           `json:"categories_collected"`
	CollectFailures     int           `json:"collect_failures"`
	ArchiveEntries      int           `json:"archive_entries"`
	ArchivePath         string        `json:"archive_path,omitempty"`
	ArchiveSize         int64         `json:"archive_size"`
	Duration            time.Duration `json:"duration"`
}

// Outcome is the final result of a run.
type Outcome struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	RunID   string  `json:"run_id"`
	Summary Summary `json:"summary"`
	// Err holds the fatal error behind a failure outcome.
	Err error `json:"-"`
}
