// SPDX-License-Identifier: MIT

package diag

import (
	"errors"

	"github.com/go-logr/logr"
	"go.uber.org/zap"
)

// errReported is attached to logr error records; logr requires an error value
// and the engine's diagnostics are plain strings.
var errReported = errors.New("diag: calibration step aborted")

type zapSink struct {
	log *zap.Logger
}

// NewZapSink reports warnings with Logger.Warn and errors with Logger.Error.
// A nil logger yields Discard.
func NewZapSink(log *zap.Logger) Sink {
	if log == nil {
		return Discard
	}

	return zapSink{log: log}
}

func (z zapSink) Report(sev Severity, msg string) {
	switch sev {
	case Error:
		z.log.Error(msg, zap.Stringer("severity", sev))
	default:
		z.log.Warn(msg, zap.Stringer("severity", sev))
	}
}

type logrSink struct {
	log logr.Logger
}

// NewLogrSink reports warnings at V(0) info level and errors through
// Logger.Error.
func NewLogrSink(log logr.Logger) Sink {
	return logrSink{log: log}
}

func (l logrSink) Report(sev Severity, msg string) {
	switch sev {
	case Error:
		l.log.Error(errReported, msg)
	default:
		l.log.Info(msg, "severity", sev.String())
	}
}
