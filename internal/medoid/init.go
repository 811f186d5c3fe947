package medoid

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInvalidK is returned when k is outside [1, N].
var ErrInvalidK = errors.New("medoid: k out of range")

// Matrix is a read-only square distance matrix.
type Matrix interface {
	// Len returns the number of points N.
	Len() int
	// Row returns the distances from point i to every point. It must not be
	// modified by the caller.
	Row(i int) []float64
}

func checkK(n, k int) error {
	if k < 1 || k > n {
		return fmt.Errorf("%w: k=%d, n=%d", ErrInvalidK, k, n)
	}
	return nil
}

// FarthestPoint selects k medoids with the greedy maximin heuristic.
//
// The first medoid is drawn uniformly from [0,N). Each further medoid is the
// not-yet-chosen point whose distance to its closest chosen medoid is
// largest, ties going to the lowest index. The result is therefore fully
// determined by the state of rng.
func FarthestPoint(m Matrix, k int, rng *rand.Rand) ([]int, error) {
	n := m.Len()
	if err := checkK(n, k); err != nil {
		return nil, err
	}

	medoids := make([]int, 0, k)
	chosen := make([]bool, n)

	first := rng.IntN(n)
	medoids = append(medoids, first)
	chosen[first] = true

	minDist := make([]float64, n)
	copy(minDist, m.Row(first))

	for len(medoids) < k {
		best := -1
		for i := 0; i < n; i++ {
			if chosen[i] {
				continue
			}
			if best == -1 || minDist[i] > minDist[best] {
				best = i
			}
		}

		medoids = append(medoids, best)
		chosen[best] = true

		row := m.Row(best)
		for i, d := range row {
			if d < minDist[i] {
				minDist[i] = d
			}
		}
	}

	return medoids, nil
}

// RandomSample selects k distinct medoids uniformly at random.
func RandomSample(m Matrix, k int, rng *rand.Rand) ([]int, error) {
	n := m.Len()
	if err := checkK(n, k); err != nil {
		return nil, err
	}

	perm := rng.Perm(n)
	medoids := make([]int, k)
	copy(medoids, perm[:k])
	return medoids, nil
}
