package medoid

import (
	"context"

	"github.com/hupe1980/kmedoids/internal/partition"
	"github.com/hupe1980/kmedoids/internal/pool"
)

// Nearest returns the cluster whose medoid is closest according to row.
// Ties go to the lowest cluster index.
func Nearest(row []float64, medoids []int) int {
	best := 0
	bestDist := row[medoids[0]]
	for c := 1; c < len(medoids); c++ {
		if d := row[medoids[c]]; d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// AssignRange labels the points in r with their nearest medoid.
func AssignRange(m Matrix, medoids []int, r partition.Range) []int {
	labels := make([]int, r.Len())
	for i := r.Lo; i < r.Hi; i++ {
		labels[i-r.Lo] = Nearest(m.Row(i), medoids)
	}
	return labels
}

// Assign labels every point with its nearest medoid.
//
// The points are split into one contiguous chunk per worker and dispatched
// as a single batch; the chunk results are stitched back in index order.
func Assign(ctx context.Context, p *pool.Pool, m Matrix, medoids []int) ([]int, error) {
	n := m.Len()
	ranges := partition.Ranges(n, p.Size())

	chunks, err := pool.Map(ctx, p, len(ranges), func(i int) ([]int, error) {
		return AssignRange(m, medoids, ranges[i]), nil
	})
	if err != nil {
		return nil, err
	}

	labels := make([]int, 0, n)
	for _, chunk := range chunks {
		labels = append(labels, chunk...)
	}
	return labels, nil
}
