package regexlib

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level tracer and meter for the compile pipeline.
var (
	tracer = otel.Tracer("regexfsm.regexlib")
	meter  = otel.Meter("regexfsm.regexlib")
)

var (
	stateCount    metric.Int64Histogram
	patternErrors metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		stateCount, err = meter.Int64Histogram(
			"regexfsm_automaton_states",
			metric.WithDescription("Number of states produced by each pipeline stage"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		patternErrors, err = meter.Int64Counter(
			"regexfsm_pattern_errors_total",
			metric.WithDescription("Total number of patterns rejected by the compiler"),
		)
		if err != nil {
			metricsErr = err
		}
	})
	return metricsErr
}

func recordStates(ctx context.Context, stage string, n int) {
	if initMetrics() != nil {
		return
	}
	stateCount.Record(ctx, int64(n), metric.WithAttributes(attribute.String("stage", stage)))
}

func recordPatternError(ctx context.Context) {
	if initMetrics() != nil {
		return
	}
	patternErrors.Add(ctx, 1)
}
