package kmedoids

import (
	"fmt"
	"strings"

	"github.com/hupe1980/kmedoids/internal/medoid"
)

// DefaultMaxIter is the iteration budget used when WithMaxIter is not given.
const DefaultMaxIter = 100

// Init selects the medoid initialization strategy.
type Init int

const (
	// InitFarthestPoint picks a random first medoid and then, greedily, the
	// point farthest from the medoids chosen so far.
	InitFarthestPoint Init = iota
	// InitRandom samples k distinct points uniformly.
	InitRandom
)

func (i Init) String() string {
	switch i {
	case InitRandom:
		return "random"
	default:
		return "farthest"
	}
}

// ParseInit maps "farthest" or "random" to an Init.
func ParseInit(s string) (Init, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "farthest", "maximin":
		return InitFarthestPoint, nil
	case "random":
		return InitRandom, nil
	default:
		return InitFarthestPoint, fmt.Errorf("unknown init %q", s)
	}
}

// EmptyClusterPolicy decides what happens to a cluster that lost all members.
type EmptyClusterPolicy int

const (
	// EmptyClusterRetain keeps the previous medoid of the cluster.
	EmptyClusterRetain EmptyClusterPolicy = iota
	// EmptyClusterReseed moves the medoid to the non-medoid point farthest
	// from the other medoids.
	EmptyClusterReseed
	// EmptyClusterFail aborts the run with an *EmptyClusterError.
	EmptyClusterFail
)

func (p EmptyClusterPolicy) String() string {
	switch p {
	case EmptyClusterReseed:
		return "reseed"
	case EmptyClusterFail:
		return "fail"
	default:
		return "retain"
	}
}

// ParseEmptyClusterPolicy maps "retain", "reseed" or "fail" to a policy.
func ParseEmptyClusterPolicy(s string) (EmptyClusterPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "retain":
		return EmptyClusterRetain, nil
	case "reseed":
		return EmptyClusterReseed, nil
	case "fail":
		return EmptyClusterFail, nil
	default:
		return EmptyClusterRetain, fmt.Errorf("unknown empty-cluster policy %q", s)
	}
}

func (p EmptyClusterPolicy) internal() medoid.EmptyPolicy {
	switch p {
	case EmptyClusterReseed:
		return medoid.EmptyReseed
	case EmptyClusterFail:
		return medoid.EmptyFail
	default:
		return medoid.EmptyRetain
	}
}

type options struct {
	workers          int
	maxIter          int
	seed             uint64
	init             Init
	emptyPolicy      EmptyClusterPolicy
	skipValidation   bool
	observer         Observer
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures a clustering run.
type Option func(*options)

func defaultOptions() options {
	return options{
		maxIter:          DefaultMaxIter,
		init:             InitFarthestPoint,
		emptyPolicy:      EmptyClusterRetain,
		observer:         NoopObserver{},
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// WithWorkers sets the number of parallel workers.
//
// Zero (the default) uses every CPU available to the process. Counts larger
// than the number of points are capped with a warning. Negative counts are
// rejected.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMaxIter sets the maximum number of update+assign rounds (default 100).
func WithMaxIter(n int) Option {
	return func(o *options) {
		o.maxIter = n
	}
}

// WithSeed seeds the generator used by initialization (default 0).
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithInit selects the initialization strategy (default InitFarthestPoint).
func WithInit(init Init) Option {
	return func(o *options) {
		o.init = init
	}
}

// WithEmptyClusterPolicy selects how empty clusters are resolved
// (default EmptyClusterRetain).
func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.emptyPolicy = p
	}
}

// WithoutValidation skips the O(N²) matrix check for callers that already
// validated the matrix.
func WithoutValidation() Option {
	return func(o *options) {
		o.skipValidation = true
	}
}

// WithObserver registers an Observer for phase boundaries.
// Pass nil to disable.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs == nil {
			obs = NoopObserver{}
		}
		o.observer = obs
	}
}

// WithLogger configures a structured logger.
// Pass nil to disable logging.
//
// Example:
//
//	logger := kmedoids.NewTextLogger(slog.LevelDebug)
//	res, err := kmedoids.Cluster(ctx, m, 8, kmedoids.WithLogger(logger))
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kmedoids.BasicMetricsCollector{}
//	res, err := kmedoids.Cluster(ctx, m, 8, kmedoids.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
