package kmedoids

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/hupe1980/kmedoids/internal/conv"
	"github.com/hupe1980/kmedoids/internal/cpu"
	"github.com/hupe1980/kmedoids/internal/medoid"
	"github.com/hupe1980/kmedoids/internal/pool"
)

// DistanceMatrix is a read-only, symmetric N×N distance matrix with a zero
// diagonal. *matrix.Dense implements it.
//
// If the value also has a `Validate() error` method, Cluster calls it before
// starting and rejects the matrix with an *InvalidInputError on failure.
type DistanceMatrix interface {
	// Len returns N.
	Len() int
	// Row returns the N distances from point i. Callers must not modify it.
	Row(i int) []float64
}

type validator interface {
	Validate() error
}

// Result is the outcome of a completed run.
type Result struct {
	// Medoids holds k point indices, one per cluster.
	Medoids []int
	// Labels holds the cluster of every point.
	Labels []int
	// Converged is true if the last round changed no label.
	Converged bool
	// Iterations is the number of update+assign rounds executed.
	Iterations int
	// Cost is the summed distance of every point to its medoid.
	Cost float64
}

// State reports how the run ended.
func (r *Result) State() State {
	if r.Converged {
		return StateConverged
	}
	return StateMaxIter
}

// Cluster partitions the points of dm into k clusters.
//
// INIT selects k medoids and labels every point. Each following round
// recomputes the medoids from the current labels, then relabels every point;
// the run converges when a round changes no label, and stops after the
// configured number of rounds otherwise.
//
// Invalid arguments are reported as *InvalidInputError before any work is
// dispatched. A failing or panicking task aborts the run with a
// *WorkerFailureError. A cancelled ctx is checked between phases and
// returned as is. No partial result is returned on error.
func Cluster(ctx context.Context, dm DistanceMatrix, k int, optFns ...Option) (*Result, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	start := time.Now()
	res, err := cluster(ctx, dm, k, &o)

	elapsed := time.Since(start)
	iterations, converged := 0, false
	if res != nil {
		iterations, converged = res.Iterations, res.Converged
	}
	o.metricsCollector.RecordRun(iterations, converged, elapsed, err)
	o.logger.LogRun(ctx, res, elapsed, err)

	if err != nil {
		return nil, err
	}
	return res, nil
}

func validate(dm DistanceMatrix, k int, o *options) error {
	if dm == nil {
		return invalid("matrix", nil, "must not be nil")
	}
	n := dm.Len()
	if n < 1 {
		return invalid("matrix", n, "must hold at least one point")
	}
	if err := conv.CheckIndexSpace(n); err != nil {
		return &InvalidInputError{Field: "matrix", Reason: "too many points", cause: err}
	}
	if k < 1 || k > n {
		return invalid("k", k, "must be in [1, N]")
	}
	if o.workers < 0 {
		return invalid("workers", o.workers, "must not be negative")
	}
	if o.maxIter < 1 {
		return invalid("max_iter", o.maxIter, "must be at least 1")
	}
	if o.init != InitFarthestPoint && o.init != InitRandom {
		return invalid("init", int(o.init), "unknown strategy")
	}
	if o.emptyPolicy < EmptyClusterRetain || o.emptyPolicy > EmptyClusterFail {
		return invalid("empty_cluster_policy", int(o.emptyPolicy), "unknown policy")
	}
	if v, ok := dm.(validator); ok && !o.skipValidation {
		if err := v.Validate(); err != nil {
			return &InvalidInputError{Field: "matrix", Reason: "not a distance matrix", cause: err}
		}
	}
	return nil
}

// run holds the state of one clustering call. It is owned by the calling
// goroutine; workers only see read-only snapshots.
type run struct {
	o       *options
	dm      DistanceMatrix
	pool    *pool.Pool
	log     *Logger
	medoids []int
	labels  []int
}

func cluster(ctx context.Context, dm DistanceMatrix, k int, o *options) (*Result, error) {
	if err := validate(dm, k, o); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := dm.Len()
	workers := cpu.Workers(o.workers)
	if workers > n {
		o.logger.WarnContext(ctx, "more workers than points, capping",
			"requested", workers,
			"n", n,
		)
		workers = n
	}

	p := pool.New(workers)
	defer func() { _ = p.Close() }()

	r := &run{
		o:    o,
		dm:   dm,
		pool: p,
		log:  o.logger.WithK(k).WithRun(n, workers),
	}

	start := time.Now()
	o.observer.OnStart(ctx, RunInfo{N: n, K: k, Workers: workers, MaxIter: o.maxIter, Init: o.init})

	if err := r.initialize(ctx, k); err != nil {
		return nil, err
	}

	state := StateIterating
	iterations := 0
	for iterations < o.maxIter {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iterations++

		changed, err := r.step(ctx, iterations)
		if err != nil {
			return nil, err
		}
		if changed == 0 {
			state = StateConverged
			break
		}
	}
	if state != StateConverged {
		state = StateMaxIter
	}

	res := &Result{
		Medoids:    r.medoids,
		Labels:     r.labels,
		Converged:  state == StateConverged,
		Iterations: iterations,
		Cost:       medoid.Cost(dm, r.medoids, r.labels),
	}
	o.observer.OnDone(ctx, DoneEvent{
		State:      state,
		Iterations: iterations,
		Cost:       res.Cost,
		Elapsed:    time.Since(start),
	})
	return res, nil
}

// initialize runs INIT: pick the first medoids, then label every point.
func (r *run) initialize(ctx context.Context, k int) error {
	rng := rand.New(rand.NewPCG(r.o.seed, r.o.seed))

	t := time.Now()
	var (
		medoids []int
		err     error
	)
	switch r.o.init {
	case InitRandom:
		medoids, err = medoid.RandomSample(r.dm, k, rng)
	default:
		medoids, err = medoid.FarthestPoint(r.dm, k, rng)
	}
	r.log.LogInit(ctx, r.o.init, medoids, err)
	r.phaseDone(ctx, PhaseInit, 0, t, err)
	if err != nil {
		return &InvalidInputError{Field: "k", Value: k, Reason: "initialization failed", cause: err}
	}
	labels, err := r.assign(ctx, 0, medoids)
	if err != nil {
		return err
	}
	r.medoids, r.labels = medoids, labels
	return nil
}

// step runs one update+assign round and returns the number of changed labels.
func (r *run) step(ctx context.Context, iteration int) (int, error) {
	start := time.Now()
	old := r.labels

	t := time.Now()
	medoids, err := medoid.Update(ctx, r.pool, r.dm, old, r.medoids, r.o.emptyPolicy.internal())
	r.phaseDone(ctx, PhaseUpdate, iteration, t, err)
	if err != nil {
		return 0, r.phaseError(PhaseUpdate, iteration, err)
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	labels, err := r.assign(ctx, iteration, medoids)
	if err != nil {
		return 0, err
	}
	r.medoids, r.labels = medoids, labels

	changed := medoid.Changed(labels, old)
	cost := medoid.Cost(r.dm, medoids, labels)
	elapsed := time.Since(start)

	r.o.metricsCollector.RecordIteration(changed, cost, elapsed)
	r.o.observer.OnIteration(ctx, IterationEvent{
		Iteration: iteration,
		MaxIter:   r.o.maxIter,
		Changed:   changed,
		Cost:      cost,
		Elapsed:   elapsed,
	})
	return changed, nil
}

func (r *run) assign(ctx context.Context, iteration int, medoids []int) ([]int, error) {
	t := time.Now()
	labels, err := medoid.Assign(ctx, r.pool, r.dm, medoids)
	r.phaseDone(ctx, PhaseAssign, iteration, t, err)
	if err != nil {
		return nil, r.phaseError(PhaseAssign, iteration, err)
	}
	return labels, nil
}

func (r *run) phaseDone(ctx context.Context, phase Phase, iteration int, start time.Time, err error) {
	elapsed := time.Since(start)
	r.o.metricsCollector.RecordPhase(phase, elapsed, err)
	if err == nil {
		r.o.observer.OnPhase(ctx, PhaseEvent{Phase: phase, Iteration: iteration, Elapsed: elapsed})
	}
}

// phaseError maps a phase failure to the public error types.
func (r *run) phaseError(phase Phase, iteration int, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var ee *medoid.EmptyError
	if errors.As(err, &ee) {
		return &EmptyClusterError{Cluster: ee.Cluster, Iteration: iteration, cause: err}
	}

	wf := &WorkerFailureError{Phase: phase, Iteration: iteration, Task: -1, cause: err}
	var te *pool.TaskError
	if errors.As(err, &te) {
		wf.Task = te.Task
		wf.Panic = te.Panic
	}
	return wf
}
