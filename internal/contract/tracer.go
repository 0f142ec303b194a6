package contract

import (
	"fmt"
	"io"
)

// nopTracer discards all events.
type nopTracer struct{}

func (nopTracer) Event(string, string, ...any) {}

// NopTracer returns a Tracer that discards everything. It is the engine
// default when no tracer is injected.
func NopTracer() Tracer { return nopTracer{} }

// writerTracer renders events as single lines to an io.Writer.
type writerTracer struct {
	w io.Writer
}

// NewWriterTracer returns a Tracer that writes one line per event, prefixed
// with the pipeline stage that emitted it.
func NewWriterTracer(w io.Writer) Tracer {
	return &writerTracer{w: w}
}

func (t *writerTracer) Event(stage string, format string, args ...any) {
	_, _ = fmt.Fprintf(t.w, "[%s] %s\n", stage, fmt.Sprintf(format, args...))
}
