package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)

	p := rng.UniformPoints(8, 3)

	assert.Equal(t, 8, len(p))
	assert.Equal(t, 3, len(p[0]))
	for _, pt := range p {
		for _, v := range pt {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestClusteredPoints(t *testing.T) {
	rng := NewRNG(4711)

	p := rng.ClusteredPoints(100, 2, 5, 0.01)

	assert.Equal(t, 100, len(p))
	// Points of the same center stay close with a small spread.
	assert.Less(t, Euclidean(p[0], p[5]), 0.2)
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	p1 := rng.UniformPoints(1, 10)

	rng.Reset()
	p2 := rng.UniformPoints(1, 10)

	assert.Equal(t, p1, p2)
	assert.Equal(t, uint64(4711), rng.Seed())
}

func TestZipf(t *testing.T) {
	rng := NewRNG(1)
	counts := make([]int, 5)
	for range 1000 {
		counts[rng.Zipf(5, 1.5)]++
	}
	assert.Greater(t, counts[0], counts[4])
	assert.Equal(t, 0, rng.Zipf(1, 1.5))
}

func TestSkewedPoints(t *testing.T) {
	rng := NewRNG(7)
	p := rng.SkewedPoints(50, 4, 1.5, 10)
	require.Len(t, p, 50)
	for _, pt := range p {
		require.Len(t, pt, 1)
		assert.Less(t, pt[0], 41.0)
	}
}

func TestDistanceRows(t *testing.T) {
	pts := [][]float64{{0, 0}, {3, 4}, {0, 1}}

	rows := DistanceRows(pts, Euclidean)
	assert.Equal(t, []float64{0, 5, 1}, rows[0])
	assert.Equal(t, rows[0][1], rows[1][0])

	rows = DistanceRows(pts, Manhattan)
	assert.Equal(t, 7.0, rows[0][1])
	assert.Equal(t, 6.0, rows[1][2])

	m := Matrix(rows)
	assert.NoError(t, m.Validate())
}

func TestOneMedian(t *testing.T) {
	rows := DistanceRows([][]float64{{0}, {1}, {2}, {10}}, Manhattan)

	assert.Equal(t, 1, OneMedian(rows, All(4)))
	assert.Equal(t, 0, OneMedian(rows, []int{0, 1}))
	assert.Equal(t, -1, OneMedian(rows, nil))
	assert.Equal(t, 11.0, Cost(rows, []int{1}, []int{0, 0, 0, 0}))
}
