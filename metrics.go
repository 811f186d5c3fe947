package kmedoids

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting clustering metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    phaseHistogram *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordPhase(phase kmedoids.Phase, d time.Duration, err error) {
//	    p.phaseHistogram.WithLabelValues(string(phase)).Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordPhase is called after every init, assign or update phase.
	// err is nil if the phase succeeded.
	RecordPhase(phase Phase, duration time.Duration, err error)

	// RecordIteration is called after each update+assign round.
	// changed is the number of points whose label changed.
	RecordIteration(changed int, cost float64, duration time.Duration)

	// RecordRun is called once when Cluster returns.
	RecordRun(iterations int, converged bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPhase(Phase, time.Duration, error)     {}
func (NoopMetricsCollector) RecordIteration(int, float64, time.Duration) {}
func (NoopMetricsCollector) RecordRun(int, bool, time.Duration, error)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AssignCount      atomic.Int64
	AssignTotalNanos atomic.Int64
	UpdateCount      atomic.Int64
	UpdateTotalNanos atomic.Int64
	InitTotalNanos   atomic.Int64
	PhaseErrors      atomic.Int64
	IterationCount   atomic.Int64
	LabelChanges     atomic.Int64
	RunCount         atomic.Int64
	RunErrors        atomic.Int64
	ConvergedRuns    atomic.Int64
	RunTotalNanos    atomic.Int64
	lastCost         atomic.Uint64
}

// RecordPhase implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPhase(phase Phase, duration time.Duration, err error) {
	switch phase {
	case PhaseAssign:
		b.AssignCount.Add(1)
		b.AssignTotalNanos.Add(duration.Nanoseconds())
	case PhaseUpdate:
		b.UpdateCount.Add(1)
		b.UpdateTotalNanos.Add(duration.Nanoseconds())
	case PhaseInit:
		b.InitTotalNanos.Add(duration.Nanoseconds())
	}
	if err != nil {
		b.PhaseErrors.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(changed int, cost float64, _ time.Duration) {
	b.IterationCount.Add(1)
	b.LabelChanges.Add(int64(changed))
	b.lastCost.Store(math.Float64bits(cost))
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ int, converged bool, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	if converged {
		b.ConvergedRuns.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AssignCount:    b.AssignCount.Load(),
		AssignAvgNanos: avg(b.AssignTotalNanos.Load(), b.AssignCount.Load()),
		UpdateCount:    b.UpdateCount.Load(),
		UpdateAvgNanos: avg(b.UpdateTotalNanos.Load(), b.UpdateCount.Load()),
		InitTotalNanos: b.InitTotalNanos.Load(),
		PhaseErrors:    b.PhaseErrors.Load(),
		IterationCount: b.IterationCount.Load(),
		LabelChanges:   b.LabelChanges.Load(),
		LastCost:       math.Float64frombits(b.lastCost.Load()),
		RunCount:       b.RunCount.Load(),
		RunErrors:      b.RunErrors.Load(),
		ConvergedRuns:  b.ConvergedRuns.Load(),
		RunAvgNanos:    avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AssignCount    int64
	AssignAvgNanos int64
	UpdateCount    int64
	UpdateAvgNanos int64
	InitTotalNanos int64
	PhaseErrors    int64
	IterationCount int64
	LabelChanges   int64
	LastCost       float64
	RunCount       int64
	RunErrors      int64
	ConvergedRuns  int64
	RunAvgNanos    int64
}
