package kmedoids

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Phase names a step of a clustering run.
type Phase string

const (
	// PhaseInit selects the initial medoids.
	PhaseInit Phase = "init"
	// PhaseAssign labels every point with its nearest medoid.
	PhaseAssign Phase = "assign"
	// PhaseUpdate recomputes every cluster's medoid.
	PhaseUpdate Phase = "update"
)

// State is the orchestrator state reported when a run ends.
type State int

const (
	StateInit State = iota
	StateIterating
	StateConverged
	StateMaxIter
)

func (s State) String() string {
	switch s {
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateMaxIter:
		return "max_iter_reached"
	default:
		return "init"
	}
}

// RunInfo describes a run that is about to start.
type RunInfo struct {
	N       int
	K       int
	Workers int
	MaxIter int
	Init    Init
}

// PhaseEvent is emitted after every phase. Iteration is 0 during INIT.
type PhaseEvent struct {
	Phase     Phase
	Iteration int
	Elapsed   time.Duration
}

// IterationEvent is emitted after every update+assign round.
type IterationEvent struct {
	Iteration int
	MaxIter   int
	// Changed is the number of points whose label changed this round.
	Changed int
	Cost    float64
	Elapsed time.Duration
}

// DoneEvent is emitted once when a run ends without error.
type DoneEvent struct {
	State      State
	Iterations int
	Cost       float64
	Elapsed    time.Duration
}

// Observer receives progress callbacks from Cluster. Callbacks run on the
// calling goroutine between phases and must not block for long.
type Observer interface {
	OnStart(ctx context.Context, info RunInfo)
	OnPhase(ctx context.Context, ev PhaseEvent)
	OnIteration(ctx context.Context, ev IterationEvent)
	OnDone(ctx context.Context, ev DoneEvent)
}

// NoopObserver ignores every callback.
type NoopObserver struct{}

func (NoopObserver) OnStart(context.Context, RunInfo)            {}
func (NoopObserver) OnPhase(context.Context, PhaseEvent)         {}
func (NoopObserver) OnIteration(context.Context, IterationEvent) {}
func (NoopObserver) OnDone(context.Context, DoneEvent)           {}

// LogObserver reports progress through a Logger. Iteration lines are logged
// at info level at most once per Interval; the rest go to debug.
type LogObserver struct {
	logger    *Logger
	sometimes rate.Sometimes
}

// DefaultProgressInterval is the info-level throttle of LogObserver.
const DefaultProgressInterval = time.Second

// NewLogObserver returns a LogObserver writing to logger. A zero interval
// logs every iteration at info level.
func NewLogObserver(logger *Logger, interval time.Duration) *LogObserver {
	if logger == nil {
		logger = NoopLogger()
	}
	lo := &LogObserver{logger: logger}
	if interval > 0 {
		lo.sometimes = rate.Sometimes{First: 1, Interval: interval}
	} else {
		lo.sometimes = rate.Sometimes{Every: 1}
	}
	return lo
}

func (lo *LogObserver) OnStart(ctx context.Context, info RunInfo) {
	lo.logger.InfoContext(ctx, "clustering started",
		"n", info.N,
		"k", info.K,
		"workers", info.Workers,
		"max_iter", info.MaxIter,
		"init", info.Init.String(),
	)
}

func (lo *LogObserver) OnPhase(ctx context.Context, ev PhaseEvent) {
	lo.logger.DebugContext(ctx, "phase completed",
		"phase", string(ev.Phase),
		"iteration", ev.Iteration,
		"elapsed", ev.Elapsed,
	)
}

func (lo *LogObserver) OnIteration(ctx context.Context, ev IterationEvent) {
	logged := false
	lo.sometimes.Do(func() {
		logged = true
		lo.logger.InfoContext(ctx, "iteration",
			"iteration", ev.Iteration,
			"progress_pct", percent(ev.Iteration, ev.MaxIter),
			"changed", ev.Changed,
			"cost", ev.Cost,
			"elapsed", ev.Elapsed,
		)
	})
	if !logged {
		lo.logger.LogIteration(ctx, ev.Iteration, ev.Changed, ev.Cost, ev.Elapsed)
	}
}

func (lo *LogObserver) OnDone(ctx context.Context, ev DoneEvent) {
	if ev.State == StateConverged {
		lo.logger.InfoContext(ctx, "converged",
			"iterations", ev.Iterations,
			"cost", ev.Cost,
			"elapsed", ev.Elapsed,
		)
		return
	}
	lo.logger.WarnContext(ctx, "iteration budget exhausted before convergence",
		"iterations", ev.Iterations,
		"cost", ev.Cost,
		"elapsed", ev.Elapsed,
	)
}

func percent(i, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(i) * 100 / float64(total)
}
