package jdwp

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/necauqua/jdwp")

// traceCall wraps a single command send/wait in a span named after its
// command set and id, so a slow or failing command shows up in a trace the
// same way an HTTP client's outgoing requests would.
func traceCall(ctx context.Context, set cmdSet, id cmdID) (context.Context, trace.Span) {
	return tracer.Start(ctx, fmt.Sprintf("jdwp.call/%d.%d", set, id),
		trace.WithAttributes(
			attribute.Int("jdwp.cmd_set", int(set)),
			attribute.Int("jdwp.cmd_id", int(id)),
		))
}

// traceEvent wraps the dispatch of a single received event kind.
func traceEvent(ctx context.Context, kind EventKind) (context.Context, trace.Span) {
	return tracer.Start(ctx, fmt.Sprintf("jdwp.event/%s", kind),
		trace.WithAttributes(attribute.String("jdwp.event_kind", kind.String())))
}
