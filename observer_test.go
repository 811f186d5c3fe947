package kmedoids

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/kmedoids/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	starts     int
	info       RunInfo
	phases     []PhaseEvent
	iterations []IterationEvent
	dones      int
	done       DoneEvent
	onPhase    func(PhaseEvent)
}

func (r *recordingObserver) OnStart(_ context.Context, info RunInfo) {
	r.starts++
	r.info = info
}

func (r *recordingObserver) OnPhase(_ context.Context, ev PhaseEvent) {
	r.phases = append(r.phases, ev)
	if r.onPhase != nil {
		r.onPhase(ev)
	}
}

func (r *recordingObserver) OnIteration(_ context.Context, ev IterationEvent) {
	r.iterations = append(r.iterations, ev)
}

func (r *recordingObserver) OnDone(_ context.Context, ev DoneEvent) {
	r.dones++
	r.done = ev
}

func TestObserver_PhaseOrder(t *testing.T) {
	obs := &recordingObserver{}

	res, err := Cluster(context.Background(), testutil.Matrix(fourPoints), 2,
		WithObserver(obs),
		WithWorkers(2),
		WithMaxIter(10),
	)
	require.NoError(t, err)

	assert.Equal(t, 1, obs.starts)
	assert.Equal(t, RunInfo{N: 4, K: 2, Workers: 2, MaxIter: 10, Init: InitFarthestPoint}, obs.info)

	// INIT, then update before assign in every round.
	want := []Phase{PhaseInit, PhaseAssign}
	for range res.Iterations {
		want = append(want, PhaseUpdate, PhaseAssign)
	}
	got := make([]Phase, len(obs.phases))
	for i, ev := range obs.phases {
		got[i] = ev.Phase
	}
	assert.Equal(t, want, got)

	assert.Equal(t, 0, obs.phases[0].Iteration)
	assert.Equal(t, 1, obs.phases[2].Iteration)

	require.Len(t, obs.iterations, res.Iterations)
	assert.Equal(t, 0, obs.iterations[len(obs.iterations)-1].Changed)
	assert.Equal(t, 10, obs.iterations[0].MaxIter)

	assert.Equal(t, 1, obs.dones)
	assert.Equal(t, StateConverged, obs.done.State)
	assert.Equal(t, res.Iterations, obs.done.Iterations)
}

func TestObserver_MaxIterState(t *testing.T) {
	rows := testutil.DistanceRows(testutil.NewRNG(9).UniformPoints(100, 2), testutil.Euclidean)
	obs := &recordingObserver{}

	res, err := Cluster(context.Background(), testutil.Matrix(rows), 10,
		WithObserver(obs),
		WithMaxIter(1),
		WithInit(InitRandom),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, res.State(), obs.done.State)
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Cluster(context.Background(), testutil.Matrix(fourPoints), 2,
		WithObserver(NewLogObserver(logger, 0)),
	)
	require.NoError(t, err)

	var msgs []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		msgs = append(msgs, rec["msg"].(string))
	}

	assert.Contains(t, msgs, "clustering started")
	assert.Contains(t, msgs, "phase completed")
	assert.Contains(t, msgs, "iteration")
	assert.Contains(t, msgs, "converged")
}

func TestLogObserver_Throttled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	lo := NewLogObserver(logger, time.Hour)

	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		lo.OnIteration(ctx, IterationEvent{Iteration: i, MaxIter: 5})
	}

	// Only the first iteration is logged at info level within the interval.
	assert.Equal(t, 1, strings.Count(buf.String(), "msg=iteration"))
	assert.Contains(t, buf.String(), "progress_pct=20")
}

func TestLogObserver_MaxIter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, nil))
	lo := NewLogObserver(logger, 0)

	lo.OnDone(context.Background(), DoneEvent{State: StateMaxIter, Iterations: 3})
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "iterations=3")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "init", StateInit.String())
	assert.Equal(t, "iterating", StateIterating.String())
	assert.Equal(t, "converged", StateConverged.String())
	assert.Equal(t, "max_iter_reached", StateMaxIter.String())
}
