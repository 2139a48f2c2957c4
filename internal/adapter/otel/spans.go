package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Strob0t/runnable/internal/domain/run"
)

const tracerName = "runnable"

// StartRunSpan starts the root span of one agent invocation.
func StartRunSpan(ctx context.Context, runID, task string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "run",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.task", task),
		),
	)
}

// EndRunSpan ends the run span, marking it as an error when the run aborted.
func EndRunSpan(span trace.Span, aborted bool) {
	span.SetAttributes(attribute.Bool("run.aborted", aborted))
	if aborted {
		span.SetStatus(codes.Error, "run aborted")
	}
	span.End()
}

// StartStepSpan starts a child span for a single step.
func StartStepSpan(ctx context.Context, step run.Step) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "step."+string(step),
		trace.WithAttributes(attribute.String("step.name", string(step))),
	)
}

// EndStepSpan records o on span and ends it.
func EndStepSpan(span trace.Span, o run.Outcome) {
	span.SetAttributes(attribute.String("step.status", string(o.Status)))
	if o.Err != nil {
		span.RecordError(o.Err)
	}
	if o.Status == run.StatusFailed {
		span.SetStatus(codes.Error, o.Detail)
	}
	span.End()
}
