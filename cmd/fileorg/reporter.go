package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"fileorg/internal/category"
	"fileorg/internal/config"
	"fileorg/internal/organizer"
)

// reporter renders the event stream of one run.
type reporter interface {
	Event(organizer.Event)
	Finish(organizer.Outcome)
}

func newReporter(mode string, out io.Writer, colorize bool) (reporter, error) {
	switch mode {
	case config.OutputText, "":
		return &textReporter{out: out, colorize: colorize}, nil
	case config.OutputJSON:
		return &jsonReporter{enc: json.NewEncoder(out)}, nil
	case config.OutputBar:
		return newBarReporter(out, colorize), nil
	default:
		return nil, fmt.Errorf("unsupported output mode %q (expected text, json or bar)", mode)
	}
}

// textReporter prints one line per event.
type textReporter struct {
	out      io.Writer
	colorize bool
}

func (r *textReporter) Event(e organizer.Event) {
	if e.Kind == organizer.KindOutcome {
		return
	}
	fmt.Fprintln(r.out, formatEventLine(e, r.colorize))
}

func (r *textReporter) Finish(outcome organizer.Outcome) {
	fmt.Fprintln(r.out, formatOutcomeLine(outcome, r.colorize))
}

func formatEventLine(e organizer.Event, colorize bool) string {
	step := fmt.Sprintf("%-10s", string(e.Step))
	label := ""
	if e.Category != "" {
		label = "[" + tint(category.Label(e.Category), categoryColor(e.Category), colorize) + "] "
	}
	msg := e.Message
	if e.Failed() {
		msg = tint(msg, ansiRed, colorize)
	}
	return fmt.Sprintf("%4d %s %s%s", e.Seq, step, label, msg)
}

func formatOutcomeLine(outcome organizer.Outcome, colorize bool) string {
	if outcome.Success {
		return tint(outcome.Message, ansiGreen, colorize)
	}
	return tint(outcome.Message, ansiRed, colorize)
}

// jsonReporter writes one JSON object per event.
type jsonReporter struct {
	enc     *json.Encoder
	outcome *organizer.Event
}

type eventJSON struct {
	Seq      int                `json:"seq"`
	Time     string             `json:"time"`
	Kind     string             `json:"kind"`
	Step     string             `json:"step"`
	Message  string             `json:"message"`
	Category string             `json:"category,omitempty"`
	File     string             `json:"file,omitempty"`
	Error    string             `json:"error,omitempty"`
	Success  *bool              `json:"success,omitempty"`
	RunID    string             `json:"run_id,omitempty"`
	Summary  *organizer.Summary `json:"summary,omitempty"`
}

func eventToJSON(e organizer.Event) eventJSON {
	out := eventJSON{
		Seq:      e.Seq,
		Time:     e.Time.UTC().Format(time.RFC3339Nano),
		Kind:     string(e.Kind),
		Step:     string(e.Step),
		Message:  e.Message,
		Category: e.Category,
		File:     e.File,
	}
	if e.Err != nil {
		out.Error = e.Err.Error()
	}
	if e.Kind == organizer.KindOutcome {
		success := e.Success
		out.Success = &success
	}
	return out
}

// Event holds back the outcome event so Finish can attach the summary.
func (r *jsonReporter) Event(e organizer.Event) {
	if e.Kind == organizer.KindOutcome {
		r.outcome = &e
		return
	}
	_ = r.enc.Encode(eventToJSON(e))
}

func (r *jsonReporter) Finish(outcome organizer.Outcome) {
	var payload eventJSON
	if r.outcome != nil {
		payload = eventToJSON(*r.outcome)
	} else {
		success := outcome.Success
		payload = eventJSON{
			Time:    time.Now().UTC().Format(time.RFC3339Nano),
			Kind:    string(organizer.KindOutcome),
			Step:    string(organizer.StepOutcome),
			Message: outcome.Message,
			Success: &success,
		}
		if outcome.Err != nil {
			payload.Error = outcome.Err.Error()
		}
	}
	summary := outcome.Summary
	payload.RunID = outcome.RunID
	payload.Summary = &summary
	_ = r.enc.Encode(payload)
}

// barReporter drives a spinner and prints only failures and the outcome.
type barReporter struct {
	out      io.Writer
	colorize bool
	bar      *progressbar.ProgressBar
	failures []string
}

func newBarReporter(out io.Writer, colorize bool) *barReporter {
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("organizing"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(20),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(colorize),
	)
	return &barReporter{out: out, colorize: colorize, bar: bar}
}

func (r *barReporter) Event(e organizer.Event) {
	if e.Kind == organizer.KindOutcome {
		return
	}
	r.bar.Describe(string(e.Step))
	_ = r.bar.Add(1)
	if e.Failed() {
		r.failures = append(r.failures, e.Message)
	}
}

func (r *barReporter) Finish(outcome organizer.Outcome) {
	_ = r.bar.Finish()
	for _, msg := range r.failures {
		fmt.Fprintln(r.out, tint(msg, ansiRed, r.colorize))
	}
	line := formatOutcomeLine(outcome, r.colorize)
	if n := len(r.failures); n > 0 {
		line += fmt.Sprintf(" (%d %s)", n, pluralize(n, "failure", "failures"))
	}
	fmt.Fprintln(r.out, line)
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
