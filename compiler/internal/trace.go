package internal

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer, a no-op until the application installs one.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}
