// SPDX-License-Identifier: MIT

// Package diag carries human-readable diagnostics out of the calibration
// engine.
//
// The engine never writes to the console. Every pipeline step that wants to
// report something hands a message to a Sink, tagged with a Severity:
//
//   - Warning — non-fatal; the calibration continues or degrades gracefully
//     (e.g. a root search that hit its iteration cap).
//   - Error   — the triggering step aborts and the calibration fails.
//
// Sinks are passed explicitly into each call (calibration.WithSink, rootsearch.WithSink),
// so two calibrations running concurrently never share a verbosity switch.
//
// Adapters:
//
//	diag.Discard            // default, drops everything
//	diag.NewRecorder()      // keeps entries in memory (tests, result reports)
//	diag.NewZapSink(logger) // go.uber.org/zap
//	diag.NewLogrSink(log)   // github.com/go-logr/logr
package diag

import (
	"fmt"
	"sync"
)

// Severity classifies a diagnostic message.
type Severity int

const (
	// Warning marks a non-fatal condition.
	Warning Severity = iota

	// Error marks a condition that aborts the current pipeline step.
	Error
)

// String returns "warning" or "error".
func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Sink accepts diagnostic messages.
// Implementations must be safe for use by a single calibration call;
// the adapters in this package are additionally safe for concurrent use.
type Sink interface {
	Report(sev Severity, msg string)
}

// Warnf formats and reports a warning on s. A nil sink is ignored.
func Warnf(s Sink, format string, args ...any) {
	if s == nil {
		return
	}
	s.Report(Warning, fmt.Sprintf(format, args...))
}

// Errorf formats and reports an error on s. A nil sink is ignored.
func Errorf(s Sink, format string, args ...any) {
	if s == nil {
		return
	}
	s.Report(Error, fmt.Sprintf(format, args...))
}

type discard struct{}

func (discard) Report(Severity, string) {}

// Discard drops every message.
var Discard Sink = discard{}

// Entry is one recorded diagnostic.
type Entry struct {
	Severity Severity `yaml:"severity"`
	Message  string   `yaml:"message"`
}

// Recorder keeps every reported entry in order.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Report appends an entry.
func (r *Recorder) Report(sev Severity, msg string) {
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Severity: sev, Message: msg})
	r.mu.Unlock()
}

// Entries returns a copy of the recorded entries.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)

	return out
}

// Count returns how many entries of the given severity were recorded.
func (r *Recorder) Count(sev Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.Severity == sev {
			n++
		}
	}

	return n
}

// Tee forwards every message to all non-nil sinks.
func Tee(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}

	return out
}

type multi []Sink

func (m multi) Report(sev Severity, msg string) {
	for _, s := range m {
		s.Report(sev, msg)
	}
}
