package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Strob0t/runnable/internal/domain/run"
)

const meterName = "runnable"

// Metrics holds the agent's metric instruments.
type Metrics struct {
	Steps       metric.Int64Counter
	RunDuration metric.Float64Histogram
}

// NewMetrics creates all metric instruments on mp. A nil mp uses the global provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Steps, err = meter.Int64Counter("runnable.steps",
		metric.WithDescription("Number of steps executed, by step and status"))
	if err != nil {
		return nil, err
	}

	m.RunDuration, err = meter.Float64Histogram("runnable.run.duration_seconds",
		metric.WithDescription("Run duration in seconds, excluding keep-alive"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordStep counts o. Launch outcomes are counted under "launch" with an app attribute.
func (m *Metrics) RecordStep(ctx context.Context, o run.Outcome) {
	if m == nil {
		return
	}
	step := string(o.Step)
	attrs := []attribute.KeyValue{attribute.String("status", string(o.Status))}
	if o.Step.IsLaunch() {
		attrs = append(attrs, attribute.String("app", step[len(run.StepLaunch)+1:]))
		step = string(run.StepLaunch)
	}
	attrs = append(attrs, attribute.String("step", step))
	m.Steps.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRun records the wall-clock duration of a run.
func (m *Metrics) RecordRun(ctx context.Context, seconds float64, aborted bool) {
	if m == nil {
		return
	}
	m.RunDuration.Record(ctx, seconds, metric.WithAttributes(attribute.Bool("aborted", aborted)))
}
