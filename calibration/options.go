// SPDX-License-Identifier: MIT

package calibration

import "github.com/katalvlaran/soilcal/diag"

// Option tunes a single calibration call.
type Option func(*options)

type options struct {
	sink diag.Sink
}

// WithSink routes warnings and step failures to s in addition to
// Result.Diagnostics. A nil sink is ignored.
func WithSink(s diag.Sink) Option {
	return func(o *options) {
		if s != nil {
			o.sink = s
		}
	}
}

// run bundles the per-call sinks: the caller's and a private recorder whose
// entries end up in Result.Diagnostics.
type run struct {
	sink diag.Sink
	rec  *diag.Recorder
}

func newRun(opts []Option) run {
	o := options{sink: diag.Discard}
	for _, fn := range opts {
		fn(&o)
	}
	rec := diag.NewRecorder()

	return run{sink: diag.Tee(o.sink, rec), rec: rec}
}
